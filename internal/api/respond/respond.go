// Package respond writes JSON bodies and the API error envelope.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dom/meucoracao/internal/validation"
)

// Error codes carried in the "code" field of error bodies.
const (
	CodeValidation         = "validation_error"
	CodeDuplicateEmail     = "duplicate_email"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodePayloadTooLarge    = "payload_too_large"
	CodeInternal           = "internal_error"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, code, message string, fields validation.Errors) {
	JSON(w, status, ErrorResponse{Code: code, Message: message, Errors: fields})
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required", nil)
}

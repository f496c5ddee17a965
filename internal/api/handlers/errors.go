package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dom/meucoracao/internal/api/respond"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/service"
	"github.com/dom/meucoracao/internal/validation"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ErrorWriter maps service errors onto HTTP responses.
type ErrorWriter struct {
	log *zap.Logger
	// separateForbidden answers ownership failures with 403 instead of the
	// 401 used for missing credentials.
	separateForbidden bool
}

func NewErrorWriter(log *zap.Logger, separateForbidden bool) ErrorWriter {
	return ErrorWriter{log: log, separateForbidden: separateForbidden}
}

func (e ErrorWriter) Write(w http.ResponseWriter, r *http.Request, op string, err error) {
	if fields, ok := validation.Fields(err); ok {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "validation failed", fields)
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.Error(w, http.StatusRequestEntityTooLarge, respond.CodePayloadTooLarge,
			fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit), nil)
		return
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		respond.Error(w, http.StatusBadRequest, respond.CodeDuplicateEmail, "email already registered", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidCredentials, "invalid email or password", nil)
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
		respond.Unauthorized(w)
	case errors.Is(err, service.ErrGoogleAuth):
		e.log.Warn("google sign-in rejected", zap.String("op", op), zap.Error(err))
		respond.Unauthorized(w)
	case errors.Is(err, domain.ErrNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "record not found", nil)
	case errors.Is(err, service.ErrForbidden):
		if e.separateForbidden {
			respond.Error(w, http.StatusForbidden, respond.CodeForbidden, "record belongs to another user", nil)
			return
		}
		respond.Unauthorized(w)
	default:
		e.log.Error("request failed",
			zap.String("op", op),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "internal server error", nil)
	}
}

// decodeJSON reads the request body into v. An empty body leaves v at its
// zero value. Malformed input is returned as a validation error and a body
// over maxBodyBytes as *http.MaxBytesError.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, strict bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}

	err := dec.Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return fmt.Errorf("decode body: %w", err)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return validation.Errors{}.Add(field, "is not allowed")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validation.Errors{}.Add(typeErr.Field, "must be a "+typeErr.Type.String())
	}
	return validation.Errors{}.Add("body", "must be valid JSON")
}

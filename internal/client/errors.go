package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dom/meucoracao/internal/validation"
)

var (
	ErrNetwork      = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoToken      = errors.New("server returned no token")
)

// APIError is a request the server answered with an error status.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  validation.Errors
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Is reports 401 answers as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Message returns a message suitable for showing to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNetwork):
		return "Não foi possível conectar ao servidor. Verifique sua conexão."
	case errors.Is(err, ErrUnauthorized):
		return "Sessão expirada. Faça login novamente."
	case errors.Is(err, ErrNoToken):
		return "Token não foi retornado pelo servidor."
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Code {
	case "duplicate_email":
		return "Este email já está cadastrado."
	case "invalid_credentials":
		return "Email ou senha inválidos."
	case "not_found":
		return "Registro não encontrado."
	case "forbidden":
		return "Este registro pertence a outro usuário."
	case "validation_error":
		parts := make([]string, 0, len(apiErr.Fields))
		for _, f := range apiErr.Fields {
			parts = append(parts, f.Field+": "+strings.Join(f.Errors, ", "))
		}
		if len(parts) == 0 {
			return "Dados inválidos."
		}
		return "Dados inválidos: " + strings.Join(parts, "; ")
	}

	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fmt.Sprintf("Erro no servidor (%d).", apiErr.Status)
}

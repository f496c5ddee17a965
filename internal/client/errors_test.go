package client_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/meucoracao/internal/client"
	"github.com/dom/meucoracao/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_IsUnauthorized(t *testing.T) {
	assert.ErrorIs(t, &client.APIError{Status: http.StatusUnauthorized}, client.ErrUnauthorized)
	assert.NotErrorIs(t, &client.APIError{Status: http.StatusForbidden}, client.ErrUnauthorized)
	assert.NotErrorIs(t, &client.APIError{Status: http.StatusUnauthorized}, client.ErrNetwork)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "network", err: fmt.Errorf("%w: dial tcp: refused", client.ErrNetwork), want: "Não foi possível conectar ao servidor. Verifique sua conexão."},
		{name: "unauthorized", err: &client.APIError{Status: 401, Code: "unauthorized"}, want: "Sessão expirada. Faça login novamente."},
		{name: "duplicate email", err: &client.APIError{Status: 400, Code: "duplicate_email"}, want: "Este email já está cadastrado."},
		{name: "invalid credentials", err: &client.APIError{Status: 400, Code: "invalid_credentials"}, want: "Email ou senha inválidos."},
		{name: "not found", err: &client.APIError{Status: 404, Code: "not_found"}, want: "Registro não encontrado."},
		{name: "forbidden", err: &client.APIError{Status: 403, Code: "forbidden"}, want: "Este registro pertence a outro usuário."},
		{
			name: "validation",
			err: &client.APIError{Status: 400, Code: "validation_error", Fields: validation.Errors{
				{Field: "nome", Errors: []string{"is required"}},
				{Field: "dosagem", Errors: []string{"is required"}},
			}},
			want: "Dados inválidos: nome: is required; dosagem: is required",
		},
		{name: "server message", err: &client.APIError{Status: 500, Code: "internal_error", Message: "internal server error"}, want: "internal server error"},
		{name: "bare status", err: &client.APIError{Status: 502}, want: "Erro no servidor (502)."},
		{name: "other", err: errors.New("disk full"), want: "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.Message(tt.err))
		})
	}
}

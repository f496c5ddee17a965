package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/meucoracao/internal/api/respond"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicationLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	// create
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.URL("/remedios"),
		map[string]string{"nome": "Losartana", "dosagem": "50mg"}, token)
	resp := testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created domain.Medication
	testutil.AssertJSONResponse(t, resp, &created)
	assert.Equal(t, "Losartana", created.Name)
	assert.Equal(t, "50mg", created.Dosage)
	assert.Equal(t, user.ID, created.OwnerID)
	require.NotEqual(t, uuid.Nil, created.ID)

	// list
	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.URL("/remedios"), nil, token)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var list []domain.Medication
	testutil.AssertJSONResponse(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// update
	req = testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.URL("/remedios/"+created.ID.String()),
		map[string]string{"dosagem": "100mg"}, token)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var updated domain.Medication
	testutil.AssertJSONResponse(t, resp, &updated)
	assert.Equal(t, "Losartana", updated.Name)
	assert.Equal(t, "100mg", updated.Dosage)

	// get
	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.URL("/remedios/"+created.ID.String()), nil, token)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var got domain.Medication
	testutil.AssertJSONResponse(t, resp, &got)
	assert.Equal(t, "100mg", got.Dosage)

	// delete
	req = testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.URL("/remedios/"+created.ID.String()), nil, token)
	resp = testutil.Do(t, req)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.URL("/remedios/"+created.ID.String()), nil, token)
	resp = testutil.Do(t, req)
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, respond.CodeNotFound)
}

func TestResourceRoutes_RequireToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{name: "list without token", method: http.MethodGet, path: "/agenda"},
		{name: "create without token", method: http.MethodPost, path: "/alergias"},
		{name: "get without token", method: http.MethodGet, path: "/laudos/" + uuid.NewString()},
		{name: "garbage token", method: http.MethodGet, path: "/remedios", token: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, tt.method, ts.URL(tt.path), nil, tt.token)
			resp := testutil.Do(t, req)
			testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, respond.CodeUnauthorized)
		})
	}

	t.Run("scheme other than Bearer", func(t *testing.T) {
		_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.URL("/agenda"), nil, "")
		req.Header.Set("Authorization", "Token "+token)
		resp := testutil.Do(t, req)
		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, respond.CodeUnauthorized)
	})
}

func TestResourceRoutes_Ownership(t *testing.T) {
	tests := []struct {
		name              string
		separateForbidden bool
		expectedStatus    int
		expectedCode      string
	}{
		{name: "default answers 401", expectedStatus: http.StatusUnauthorized, expectedCode: respond.CodeUnauthorized},
		{name: "separate forbidden answers 403", separateForbidden: true, expectedStatus: http.StatusForbidden, expectedCode: respond.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.TestConfig()
			cfg.SeparateForbidden = tt.separateForbidden
			ts := testutil.NewTestServerWithConfig(t, cfg)

			_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
			_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

			req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.URL("/alergias"),
				map[string]string{"nome": "Penicilina", "tipo": "medicamento"}, ownerToken)
			resp := testutil.Do(t, req)
			testutil.AssertStatusCode(t, resp, http.StatusCreated)
			var allergy domain.Allergy
			testutil.AssertJSONResponse(t, resp, &allergy)
			path := ts.URL("/alergias/" + allergy.ID.String())

			for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
				req := testutil.CreateAuthenticatedRequest(t, method, path, map[string]string{"tipo": "alimento"}, otherToken)
				resp := testutil.Do(t, req)
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedCode)
			}

			req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.URL("/alergias"), nil, otherToken)
			resp = testutil.Do(t, req)
			var others []domain.Allergy
			testutil.AssertJSONResponse(t, resp, &others)
			assert.Empty(t, others)

			req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, path, nil, ownerToken)
			resp = testutil.Do(t, req)
			var stored domain.Allergy
			testutil.AssertJSONResponse(t, resp, &stored)
			assert.Equal(t, "medicamento", stored.Type)
		})
	}
}

func TestResourceRoutes_Validation(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("missing required fields", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.URL("/agenda"),
			map[string]string{"medico": "Dr. Silva"}, token)
		resp := testutil.Do(t, req)

		body := testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, respond.CodeValidation)
		testutil.AssertFieldError(t, body, "titulo", "is required")
		testutil.AssertFieldError(t, body, "data", "is required")
		testutil.AssertFieldError(t, body, "horario", "is required")
	})

	t.Run("unknown field on create", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.URL("/laudos"),
			map[string]string{"titulo": "Eco", "data": "2026-01-10", "ownerId": uuid.NewString()}, token)
		resp := testutil.Do(t, req)

		body := testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, respond.CodeValidation)
		testutil.AssertFieldError(t, body, "ownerId", "is not allowed")
	})

	t.Run("update cannot change owner", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.URL("/laudos"),
			map[string]string{"titulo": "Eco", "data": "2026-01-10"}, token)
		resp := testutil.Do(t, req)
		var report domain.Report
		testutil.AssertJSONResponse(t, resp, &report)

		req = testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.URL("/laudos/"+report.ID.String()),
			map[string]string{"ownerId": uuid.NewString(), "observacoes": "normal"}, token)
		resp = testutil.Do(t, req)
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var updated domain.Report
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, report.OwnerID, updated.OwnerID)
		assert.Equal(t, "normal", updated.Notes)
	})

	t.Run("blank required field on update", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.URL("/remedios"),
			map[string]string{"nome": "AAS", "dosagem": "100mg"}, token)
		resp := testutil.Do(t, req)
		var med domain.Medication
		testutil.AssertJSONResponse(t, resp, &med)

		req = testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.URL("/remedios/"+med.ID.String()),
			map[string]string{"nome": ""}, token)
		resp = testutil.Do(t, req)
		body := testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, respond.CodeValidation)
		testutil.AssertFieldError(t, body, "nome", "must not be empty")
	})

	t.Run("malformed json", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL("/remedios"), bytes.NewBufferString(`{"nome": `))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := testutil.Do(t, req)
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, respond.CodeValidation)
	})

	t.Run("malformed id", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.URL("/remedios/not-a-uuid"), nil, token)
		resp := testutil.Do(t, req)
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, respond.CodeNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.URL("/remedios/"+uuid.NewString()), nil, token)
		resp := testutil.Do(t, req)
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, respond.CodeNotFound)
	})
}

func TestResourceRoutes_ListIsRepeatable(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	for _, body := range []map[string]string{
		{"titulo": "Ecocardiograma", "data": "2025-02-01"},
		{"titulo": "Holter", "data": "2025-03-15", "observacoes": "24h"},
	} {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.URL("/laudos"), body, token)
		testutil.AssertStatusCode(t, testutil.Do(t, req), http.StatusCreated)
	}

	list := func() string {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.URL("/laudos"), nil, token)
		resp := testutil.Do(t, req)
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(raw)
	}

	first := list()
	var reports []domain.Report
	require.NoError(t, json.Unmarshal([]byte(first), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "Ecocardiograma", reports[0].Title)
	assert.JSONEq(t, first, list())
}

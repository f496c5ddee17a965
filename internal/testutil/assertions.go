package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/meucoracao/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorBody is the JSON error envelope written by the API.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies the status and error code of a failed request
// and returns the decoded body.
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedCode string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var body ErrorBody
	AssertJSONResponse(t, resp, &body)
	assert.Equal(t, expectedCode, body.Code, "error code mismatch")
	assert.NotEmpty(t, body.Message)
	return body
}

// AssertFieldError checks that body reports msg for field.
func AssertFieldError(t *testing.T, body ErrorBody, field, msg string) {
	t.Helper()

	for _, f := range body.Errors {
		if f.Field == field {
			assert.Contains(t, f.Errors, msg)
			return
		}
	}
	t.Errorf("no errors reported for field %q in %+v", field, body.Errors)
}

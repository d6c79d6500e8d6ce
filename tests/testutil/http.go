package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campus/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// APIClient sends in-process requests to an HTTP handler with a bearer token.
type APIClient struct {
	handler http.Handler
	token   string
}

// NewAPIClient creates a client for handler. An empty token sends no Authorization header.
func NewAPIClient(handler http.Handler, token string) *APIClient {
	return &APIClient{handler: handler, token: token}
}

// WithToken returns a client that authenticates with token
func (c *APIClient) WithToken(token string) *APIClient {
	return &APIClient{handler: c.handler, token: token}
}

// Do sends a request. Strings and byte slices are sent as is; other non-nil bodies
// are encoded as JSON.
func (c *APIClient) Do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON decodes the response body into T.
func DecodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "Failed to parse JSON response: %s", rec.Body.String())
	return out
}

// AssertError checks the status and error code of an error envelope.
func AssertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) dto.ErrorResponse {
	t.Helper()

	assert.Equal(t, status, rec.Code, "Unexpected status: %s", rec.Body.String())
	resp := DecodeJSON[dto.ErrorResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, code, resp.Error.Code)
	return resp
}

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// APIResponse is the decoded envelope plus the raw HTTP response
type APIResponse struct {
	Status  int
	Header  http.Header
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Errors  []FieldErrorBody `json:"errors"`
	Raw     []byte
}

// FieldErrorBody is one entry of a validation failure
type FieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DecodeData unmarshals the data member into v
func (r *APIResponse) DecodeData(t *testing.T, v interface{}) {
	t.Helper()
	require.NotEmpty(t, r.Data, "response has no data: %s", r.Raw)
	require.NoError(t, json.Unmarshal(r.Data, v))
}

// Do sends a request to the test server. A non-nil body is JSON encoded and
// a non-empty token goes in the Authorization header.
func (e *TestEnv) Do(t *testing.T, method, path string, body interface{}, token string) *APIResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := &APIResponse{Status: resp.StatusCode, Header: resp.Header, Raw: raw}
	if len(raw) > 0 && resp.Header.Get("Content-Type") != "" {
		_ = json.Unmarshal(raw, out)
	}
	return out
}

// Post sends an unauthenticated JSON POST
func (e *TestEnv) Post(t *testing.T, path string, body interface{}) *APIResponse {
	t.Helper()
	return e.Do(t, http.MethodPost, path, body, "")
}

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

// performRequest runs one handler against a request. A string body is sent
// as is; anything else is JSON encoded.
func performRequest(handler gin.HandlerFunc, method, path string, body interface{}, setup ...func(*gin.Context)) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	for _, fn := range setup {
		fn(c)
	}

	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var responseBody map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	return responseBody
}

func assertBody(t *testing.T, w *httptest.ResponseRecorder, expectedBody map[string]interface{}) {
	t.Helper()
	responseBody := decodeBody(t, w)
	for key, expectedValue := range expectedBody {
		if actualValue, exists := responseBody[key]; !exists {
			t.Errorf("expected key %s not found in response", key)
		} else {
			validateValue(t, key, expectedValue, actualValue)
		}
	}
}

func validateValue(t *testing.T, key string, expected, actual interface{}) {
	t.Helper()

	expectedMap, expectedIsMap := expected.(map[string]interface{})
	actualMap, actualIsMap := actual.(map[string]interface{})

	if expectedIsMap && actualIsMap {
		for nestedKey, nestedExpected := range expectedMap {
			if nestedActual, exists := actualMap[nestedKey]; !exists {
				t.Errorf("expected key %s.%s not found in response", key, nestedKey)
			} else {
				validateValue(t, key+"."+nestedKey, nestedExpected, nestedActual)
			}
		}
	} else if expected != actual {
		t.Errorf("for key %s, expected %v, got %v", key, expected, actual)
	}
}

// fieldErrors returns the field names of a validation failure
func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	responseBody := decodeBody(t, w)
	list, _ := responseBody["errors"].([]interface{})
	fields := make([]string, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			fields = append(fields, m["field"].(string))
		}
	}
	return fields
}

func containsField(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

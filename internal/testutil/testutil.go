package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"pokecatcher/internal/entity"
	"pokecatcher/internal/platform/crypto"
)

const TestSecret = "test-secret"

// TestTrainer is the trainer most handler tests act as.
var TestTrainer = entity.Trainer{
	ID:          "trainer-test-123",
	DisplayName: "Test Trainer",
}

// GenerateTestToken signs a one-hour trainer token with TestSecret.
func GenerateTestToken(trainer entity.Trainer) string {
	token, _ := crypto.GenerateToken(TestSecret, trainer.ID, trainer.DisplayName, time.Hour)
	return token
}

func GenerateExpiredToken(trainer entity.Trainer) string {
	token, _ := crypto.GenerateToken(TestSecret, trainer.ID, trainer.DisplayName, -time.Hour)
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode returns error.code from an error envelope, "" otherwise.
func (r RecordResponse) ErrorCode() string {
	errBody, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}

// Data returns the data member of a success envelope.
func (r RecordResponse) Data() interface{} {
	return r.Body["data"]
}

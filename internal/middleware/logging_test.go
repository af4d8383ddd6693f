package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingMiddleware_LogsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	mw := NewLoggingMiddleware(logger)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/missing", nil)
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}

	if entry["msg"] != "http request" {
		t.Errorf("msg = %v, want %q", entry["msg"], "http request")
	}
	if entry["method"] != "GET" {
		t.Errorf("method = %v, want %q", entry["method"], "GET")
	}
	if entry["path"] != "/api/v1/users/missing" {
		t.Errorf("path = %v, want %q", entry["path"], "/api/v1/users/missing")
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("status = %v, want %d", entry["status"], http.StatusNotFound)
	}
	if _, ok := entry["duration_ms"].(float64); !ok {
		t.Errorf("duration_ms = %v, want number", entry["duration_ms"])
	}
	if _, present := entry["user_id"]; present {
		t.Errorf("user_id = %v, want absent without identity", entry["user_id"])
	}
}

func TestLoggingMiddleware_IncludesUserIDWhenPresent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := NewLoggingMiddleware(logger)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), "u1"))
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["user_id"] != "u1" {
		t.Errorf("user_id = %v, want %q", entry["user_id"], "u1")
	}
}

// WriteHeaderを呼ばないハンドラーは200として記録される
func TestLoggingMiddleware_ImplicitStatusOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mw := NewLoggingMiddleware(logger)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want %d", entry["status"], http.StatusOK)
	}
}

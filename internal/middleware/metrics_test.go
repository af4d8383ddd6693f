package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type mockRecorder struct {
	method   string
	route    string
	status   int
	duration time.Duration
	called   bool
}

func (m *mockRecorder) RecordRequest(method, route string, status int, duration time.Duration) {
	m.method = method
	m.route = route
	m.status = status
	m.duration = duration
	m.called = true
}

// chiのルーティング経由ではIDではなくルートパターンがラベルになる
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	recorder := &mockRecorder{}

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(recorder))
	r.Get("/api/v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/u1", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if !recorder.called {
		t.Fatal("expected RecordRequest to be called")
	}
	if recorder.method != "GET" {
		t.Errorf("method = %q, want %q", recorder.method, "GET")
	}
	if recorder.route != "/api/v1/users/{id}" {
		t.Errorf("route = %q, want %q", recorder.route, "/api/v1/users/{id}")
	}
	if recorder.status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", recorder.status, http.StatusNotFound)
	}
}

// ルーターを経由しない場合はリクエストパスにフォールバックする
func TestMetricsMiddleware_FallsBackToPath(t *testing.T) {
	recorder := &mockRecorder{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := NewMetricsMiddleware(recorder)
	req := httptest.NewRequest(http.MethodGet, "/standalone", nil)
	mw(handler).ServeHTTP(httptest.NewRecorder(), req)

	if recorder.route != "/standalone" {
		t.Errorf("route = %q, want %q", recorder.route, "/standalone")
	}
	if recorder.status != http.StatusOK {
		t.Errorf("status = %d, want %d", recorder.status, http.StatusOK)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected request ID in context")
	}
	if _, err := ulid.ParseStrict(seen); err != nil {
		t.Errorf("generated request ID %q is not a ULID: %v", seen, err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}
}

func TestRequestID_Unique(t *testing.T) {
	t.Parallel()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestRequestID_Propagated(t *testing.T) {
	t.Parallel()

	var gotRequestID, gotTraceID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = GetRequestID(r.Context())
		gotTraceID = GetTraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	req.Header.Set(TraceIDHeader, "trace-456")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if gotRequestID != "req-123" {
		t.Errorf("request ID = %q, want req-123", gotRequestID)
	}
	if gotTraceID != "trace-456" {
		t.Errorf("trace ID = %q, want trace-456", gotTraceID)
	}
	if rec.Header().Get(TraceIDHeader) != "trace-456" {
		t.Errorf("trace header not echoed, got %q", rec.Header().Get(TraceIDHeader))
	}
}

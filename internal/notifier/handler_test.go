package notifier

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

const eventPayload = `{
	"event_id": "7b4a6e2e-0000-0000-0000-000000000001",
	"order_id": 42,
	"cust_id": 7,
	"rest_id": 3,
	"total": 125000,
	"upgraded": true,
	"items": [{"item_id": 9, "quantity": 2}]
}`

func newTestHandler(adminURL string) *Handler {
	return NewHandler(adminURL, &http.Client{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleDispatchCandidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/delivery/available" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"courier_id": 5, "name": "Sam", "phone": "555-0101", "area_id": 1, "available": true}]`))
	}))
	defer server.Close()

	handler := newTestHandler(server.URL)
	if err := handler.Handle(context.Background(), []byte(eventPayload)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHandleNoCouriers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	handler := newTestHandler(server.URL)
	if err := handler.Handle(context.Background(), []byte(eventPayload)); err != nil {
		t.Fatalf("expected empty courier list to be handled, got %v", err)
	}
}

func TestHandleAdminAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	handler := newTestHandler(server.URL)
	if err := handler.Handle(context.Background(), []byte(eventPayload)); err == nil {
		t.Fatal("expected error when admin api fails")
	}
}

func TestHandleBadPayload(t *testing.T) {
	handler := newTestHandler("http://unused.invalid")
	if err := handler.Handle(context.Background(), []byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

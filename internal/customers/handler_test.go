package customers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler() *Handler {
	return NewHandler(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp["error"]
}

func TestHandleCreateValidation(t *testing.T) {
	handler := newTestHandler()

	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed JSON", `{"name"`, "invalid request body"},
		{"missing name", `{"phone": "123", "area_id": 1}`, "name is required"},
		{"missing area", `{"name": "Ada", "phone": "123"}`, "area_id is required"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(c.body))
			rec := httptest.NewRecorder()

			handler.HandleCreate(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if got := errorMessage(t, rec); got != c.wantMsg {
				t.Errorf("expected error %q, got %q", c.wantMsg, got)
			}
		})
	}
}

func TestHandleUpdateValidation(t *testing.T) {
	handler := newTestHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/customers/{id}", handler.HandleUpdate)

	req := httptest.NewRequest(http.MethodPut, "/api/customers/abc", strings.NewReader(`{"name":"Ada","area_id":1}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "invalid customer id" {
		t.Errorf("unexpected error: %q", got)
	}
}

func TestHandleDeleteValidation(t *testing.T) {
	handler := newTestHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/customers/{id}", handler.HandleDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/0", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

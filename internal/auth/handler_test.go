package auth

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

func TestHandleRegisterValidation(t *testing.T) {
	handler := newTestHandler()

	cases := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"username"`},
		{"missing username", `{"password": "p"}`},
		{"missing password", `{"username": "admin"}`},
		{"empty body", `{}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(c.body))
			rec := httptest.NewRecorder()

			handler.HandleRegister(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleLoginValidation(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username": "admin"}`))
	rec := httptest.NewRecorder()

	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "Username and password required" {
		t.Errorf("unexpected error: %q", resp["error"])
	}
}

package catalog

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

func TestHandleMenuRejectsBadRestaurantID(t *testing.T) {
	handler := newTestHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/menu/{restaurantId}", handler.HandleMenu)

	for _, path := range []string{"/api/menu/abc", "/api/menu/0", "/api/menu/-3"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", path, rec.Code)
		}
	}
}

func TestHandleCreateMenuItemValidation(t *testing.T) {
	handler := newTestHandler()

	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed JSON", `{`, "invalid request body"},
		{"missing restaurant", `{"item_name": "Soup", "price": 500}`, "rest_id is required"},
		{"missing name", `{"rest_id": 1, "price": 500}`, "item_name is required"},
		{"negative price", `{"rest_id": 1, "item_name": "Soup", "price": -1}`, "price must not be negative"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/menu", strings.NewReader(c.body))
			rec := httptest.NewRecorder()

			handler.HandleCreateMenuItem(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["error"] != c.wantMsg {
				t.Errorf("expected error %q, got %q", c.wantMsg, resp["error"])
			}
		})
	}
}

package orders

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestHandler builds a handler with no repository. Only validation paths
// that never reach storage may be exercised with it.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp["error"]
}

func TestHandlePlaceValidation(t *testing.T) {
	handler := newTestHandler(t)

	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "malformed JSON",
			body:    `{"cust_id": `,
			wantMsg: "invalid request body",
		},
		{
			name:    "missing customer",
			body:    `{"rest_id": 1, "items": [{"item_id": 1, "quantity": 1}]}`,
			wantMsg: "cust_id and rest_id are required",
		},
		{
			name:    "missing restaurant",
			body:    `{"cust_id": 1, "items": [{"item_id": 1, "quantity": 1}]}`,
			wantMsg: "cust_id and rest_id are required",
		},
		{
			name:    "empty items",
			body:    `{"cust_id": 1, "rest_id": 1, "items": []}`,
			wantMsg: "no items in order",
		},
		{
			name:    "items absent",
			body:    `{"cust_id": 1, "rest_id": 1}`,
			wantMsg: "no items in order",
		},
		{
			name:    "zero quantity",
			body:    `{"cust_id": 1, "rest_id": 1, "items": [{"item_id": 1, "quantity": 0}]}`,
			wantMsg: "quantity must be positive",
		},
		{
			name:    "negative quantity",
			body:    `{"cust_id": 1, "rest_id": 1, "items": [{"item_id": 1, "quantity": -2}]}`,
			wantMsg: "quantity must be positive",
		},
		{
			name:    "bad item id",
			body:    `{"cust_id": 1, "rest_id": 1, "items": [{"item_id": 0, "quantity": 1}]}`,
			wantMsg: "invalid item id",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(c.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.HandlePlace(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := decodeError(t, rec); got != c.wantMsg {
				t.Errorf("expected error %q, got %q", c.wantMsg, got)
			}
		})
	}
}

func TestHandleUpdateStatusValidation(t *testing.T) {
	handler := newTestHandler(t)

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/orders/{id}/status", handler.HandleUpdateStatus)

	t.Run("non-numeric order id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/orders/abc/status", strings.NewReader(`{"status":"Completed"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "invalid order id" {
			t.Errorf("unexpected error: %q", got)
		}
	})

	t.Run("unknown status value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/orders/7/status", strings.NewReader(`{"status":"Cancelled"}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "unknown status" {
			t.Errorf("unexpected error: %q", got)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/orders/7/status", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandleHistoryValidation(t *testing.T) {
	handler := newTestHandler(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customers/{id}/history", handler.HandleHistory)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/-1/history", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "invalid customer id" {
		t.Errorf("unexpected error: %q", got)
	}
}

package customers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/restomate/resto-admin/internal/domain"
)

type Handler struct {
	repo   *CustomerRepository
	logger *slog.Logger
}

func NewHandler(repo *CustomerRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list customers", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	customers, err := h.repo.Search(r.Context(), q)
	if err != nil {
		h.logger.Error("failed to search customers", "error", err, "q", q)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, customers)
}

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	AreaID  int64  `json:"area_id"`
}

func (req *customerRequest) validate() string {
	if req.Name == "" {
		return "name is required"
	}
	if req.AreaID <= 0 {
		return "area_id is required"
	}
	return ""
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}

	customer := &domain.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		AreaID:  req.AreaID,
	}

	if err := h.repo.Create(r.Context(), customer); err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			h.writeError(w, http.StatusConflict, "Email already exists")
		case errors.Is(err, ErrAreaNotFound):
			h.writeError(w, http.StatusBadRequest, "unknown area")
		default:
			h.logger.Error("failed to create customer", "error", err)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("customer created", "customer_id", customer.ID)
	h.writeJSON(w, http.StatusCreated, map[string]any{"message": "Customer added", "id": customer.ID})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}

	customer := &domain.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		AreaID:  req.AreaID,
	}

	if err := h.repo.Update(r.Context(), id, customer); err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			h.writeError(w, http.StatusNotFound, "customer not found")
		case errors.Is(err, ErrEmailTaken):
			h.writeError(w, http.StatusConflict, "Email already exists")
		case errors.Is(err, ErrAreaNotFound):
			h.writeError(w, http.StatusBadRequest, "unknown area")
		default:
			h.logger.Error("failed to update customer", "error", err, "customer_id", id)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("customer updated", "customer_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Customer updated"})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			h.writeError(w, http.StatusNotFound, "customer not found")
		case errors.Is(err, ErrHasOrders):
			h.writeError(w, http.StatusConflict, "Cannot delete: Customer has orders")
		default:
			h.logger.Error("failed to delete customer", "error", err, "customer_id", id)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("customer deleted", "customer_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

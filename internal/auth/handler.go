package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/restomate/resto-admin/internal/domain"
)

type Handler struct {
	repo   *UserRepository
	logger *slog.Logger
}

func NewHandler(repo *UserRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id, err := h.repo.Create(r.Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			h.writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("user registered", "user_id", id, "username", req.Username)
	h.writeJSON(w, http.StatusCreated, map[string]any{"message": "User registered", "user_id": id})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := h.repo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		h.logger.Error("failed to look up user", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil || !CheckPassword(user.PasswordHash, req.Password) {
		h.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    domain.User{ID: user.ID, Username: user.Username},
	})
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

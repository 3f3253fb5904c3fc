package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdminHandler serves devotee administration
type AdminHandler struct {
	userService *service.UserService
}

func NewAdminHandler(userService *service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = parsed
	}

	users, err := h.userService.ListUsers(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// SetRole handles PUT /api/admin/users/{userID}/role
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userID")

	var req struct {
		Role domain.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.SetRole(r.Context(), targetID, req.Role); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"user_id": targetID,
		"role":    string(req.Role),
	})
}

// Me handles GET /api/me
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile := getProfile(r)
	if profile == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

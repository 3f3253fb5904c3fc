package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"

	"github.com/go-chi/chi/v5"
)

// SankalpaHandler serves community campaigns
type SankalpaHandler struct {
	sankalpaService *service.SankalpaService
}

func NewSankalpaHandler(sankalpaService *service.SankalpaService) *SankalpaHandler {
	return &SankalpaHandler{sankalpaService: sankalpaService}
}

// ListActive handles GET /api/sankalpas
func (h *SankalpaHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	sankalpas, err := h.sankalpaService.ListActive(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sankalpas")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sankalpas": sankalpas,
		"count":     len(sankalpas),
	})
}

// Get handles GET /api/sankalpas/{sankalpaID}
func (h *SankalpaHandler) Get(w http.ResponseWriter, r *http.Request) {
	sankalpa, err := h.sankalpaService.Get(r.Context(), chi.URLParam(r, "sankalpaID"))
	if err != nil {
		if errors.Is(err, domain.ErrSankalpaNotFound) {
			respondError(w, http.StatusNotFound, "Sankalpa not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load sankalpa")
		return
	}

	respondJSON(w, http.StatusOK, sankalpa)
}

// ListAll handles GET /api/admin/sankalpas
func (h *SankalpaHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	sankalpas, err := h.sankalpaService.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load sankalpas")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sankalpas": sankalpas,
		"count":     len(sankalpas),
	})
}

// Create handles POST /api/admin/sankalpas
func (h *SankalpaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSankalpaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Target < 0 {
		respondError(w, http.StatusBadRequest, "target cannot be negative")
		return
	}

	sankalpa, err := h.sankalpaService.Create(r.Context(), getUserID(r), &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, sankalpa)
}

// Update handles PUT /api/admin/sankalpas/{sankalpaID}
func (h *SankalpaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSankalpaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sankalpa, err := h.sankalpaService.Update(r.Context(), chi.URLParam(r, "sankalpaID"), &req)
	if err != nil {
		if errors.Is(err, domain.ErrSankalpaNotFound) {
			respondError(w, http.StatusNotFound, "Sankalpa not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, sankalpa)
}

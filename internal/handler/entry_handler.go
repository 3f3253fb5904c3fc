package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"
)

// maxEntryCount caps a single submission; larger numbers are almost
// certainly typos.
const maxEntryCount = 1000000

// EntryHandler serves Nama count submissions
type EntryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Submit handles POST /api/entries
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := getUserID(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validateEntryRequest(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.entryService.SubmitEntry(ctx, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSankalpaNotFound):
			respondError(w, http.StatusNotFound, "Sankalpa not found")
		case errors.Is(err, domain.ErrSankalpaClosed):
			respondError(w, http.StatusConflict, "This sankalpa is not accepting entries")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, response)
}

// ListMine handles GET /api/me/entries
func (h *EntryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := h.entryService.ListUserEntries(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load entries")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func validateEntryRequest(req *domain.SubmitEntryRequest) error {
	if req.SankalpaID == "" {
		return fmt.Errorf("sankalpa_id is required")
	}
	if req.Count <= 0 {
		return fmt.Errorf("count must be a positive number")
	}
	if req.Count > maxEntryCount {
		return fmt.Errorf("count exceeds the maximum of %d per submission", maxEntryCount)
	}
	if req.Source != "" && req.Source != string(domain.SourceManual) && req.Source != string(domain.SourceAudio) {
		return fmt.Errorf("source must be %q or %q", domain.SourceManual, domain.SourceAudio)
	}
	if (req.PeriodStart == "") != (req.PeriodEnd == "") {
		return fmt.Errorf("period_start and period_end must be provided together")
	}
	return nil
}

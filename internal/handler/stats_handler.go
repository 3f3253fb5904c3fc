package handler

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"

	"github.com/go-chi/chi/v5"
)

// StatsHandler serves bucketed Nama totals and reports
type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// MyStats handles GET /api/me/stats
func (h *StatsHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.statsService.GetUserStats(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// SankalpaStats handles GET /api/sankalpas/{sankalpaID}/stats
// (polling endpoint; campaign dashboards refresh it continuously)
func (h *StatsHandler) SankalpaStats(w http.ResponseWriter, r *http.Request) {
	sankalpaID := chi.URLParam(r, "sankalpaID")
	if sankalpaID == "" {
		respondError(w, http.StatusBadRequest, "Sankalpa ID is required")
		return
	}

	stats, err := h.statsService.GetSankalpaStats(r.Context(), sankalpaID)
	if err != nil {
		if errors.Is(err, domain.ErrSankalpaNotFound) {
			respondError(w, http.StatusNotFound, "Sankalpa not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	etag := generateETag(stats)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=10")

	respondJSON(w, http.StatusOK, stats)
}

// RangeReport handles GET /api/reports/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *StatsHandler) RangeReport(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	start, err := time.Parse(domain.EntryDateLayout, r.URL.Query().Get("start"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "start must be a YYYY-MM-DD date")
		return
	}
	end, err := time.Parse(domain.EntryDateLayout, r.URL.Query().Get("end"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "end must be a YYYY-MM-DD date")
		return
	}

	report, err := h.statsService.GetRangeReport(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// CommunityReport handles GET /api/reports/community
func (h *StatsHandler) CommunityReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.statsService.GetCommunityReport(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute community report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func generateETag(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return fmt.Sprintf(`"%x"`, hash)
}

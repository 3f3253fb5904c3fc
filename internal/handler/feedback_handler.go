package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"
)

// FeedbackHandler serves devotee feedback submissions
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit handles POST /api/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	feedback, err := h.feedbackService.Submit(r.Context(), userID, &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	respondJSON(w, http.StatusCreated, feedback)
}

// List handles GET /api/moderator/feedback
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	includeResolved := r.URL.Query().Get("include_resolved") == "true"

	feedback, err := h.feedbackService.List(r.Context(), includeResolved)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load feedback")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": feedback,
		"count":    len(feedback),
	})
}

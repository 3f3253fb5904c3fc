package handler

import (
	"errors"
	"net/http"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"
)

// QuoteHandler serves the daily devotional quote
type QuoteHandler struct {
	quoteService *service.QuoteService
}

func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Today handles GET /api/quote/today. Public; the sibling display apps
// poll it without authentication.
func (h *QuoteHandler) Today(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.TodayQuote(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			respondError(w, http.StatusNotFound, "No quote assigned for today")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load quote")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	respondJSON(w, http.StatusOK, quote)
}

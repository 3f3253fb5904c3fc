package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"namavruksha/internal/domain"
	"namavruksha/internal/reader"
	"namavruksha/internal/service"

	"github.com/go-chi/chi/v5"
)

// LibraryHandler serves the book catalogue and reading sessions
type LibraryHandler struct {
	bookService *service.BookService
	sessions    *reader.Manager
}

func NewLibraryHandler(bookService *service.BookService, sessions *reader.Manager) *LibraryHandler {
	return &LibraryHandler{
		bookService: bookService,
		sessions:    sessions,
	}
}

// ListBooks handles GET /api/library/books
func (h *LibraryHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load library")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"books": books,
		"count": len(books),
	})
}

// GetBook handles GET /api/library/books/{bookID}
func (h *LibraryHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.Get(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load book")
		return
	}

	respondJSON(w, http.StatusOK, book)
}

// AddBook handles POST /api/admin/books
func (h *LibraryHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req domain.AddBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.StoragePath == "" {
		respondError(w, http.StatusBadRequest, "storage_path is required")
		return
	}

	book, err := h.bookService.Add(r.Context(), userID, &req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add book")
		return
	}

	respondJSON(w, http.StatusCreated, book)
}

// OpenSession handles POST /api/library/books/{bookID}/sessions. The
// book's bytes are fetched from storage, parsed, and the devotee's last
// page and bookmarks are restored.
func (h *LibraryHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	book, err := h.bookService.Get(ctx, chi.URLParam(r, "bookID"))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			respondError(w, http.StatusNotFound, "Book not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load book")
		return
	}

	session, err := h.sessions.Open(ctx, userID, book.ID, book.StoragePath)
	if err != nil {
		var fetchErr *reader.FetchError
		var parseErr *reader.ParseError
		switch {
		case errors.As(err, &fetchErr):
			respondError(w, http.StatusBadGateway, "Could not fetch the book from storage")
		case errors.As(err, &parseErr):
			respondError(w, http.StatusUnprocessableEntity, "The book could not be parsed")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to open reading session")
		}
		return
	}

	snap := session.Snapshot()
	h.bookService.RecordPageCount(ctx, book.ID, snap.PageCount)

	respondJSON(w, http.StatusCreated, snap)
}

// GetSession handles GET /api/sessions/{sessionID}
func (h *LibraryHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// CloseSession handles DELETE /api/sessions/{sessionID}
func (h *LibraryHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "sessionID"), getUserID(r)); err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// JumpToPage handles POST /api/sessions/{sessionID}/page
func (h *LibraryHandler) JumpToPage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := session.JumpToPage(r.Context(), req.Page); err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// ToggleBookmark handles POST /api/sessions/{sessionID}/bookmark
func (h *LibraryHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.ToggleBookmark(r.Context()); err != nil {
		h.respondSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

// Search handles POST /api/sessions/{sessionID}/search
func (h *LibraryHandler) Search(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	matches, err := session.Search(r.Context(), req.Query)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches":  matches,
		"count":    len(matches),
		"snapshot": session.Snapshot(),
	})
}

// NextMatch handles POST /api/sessions/{sessionID}/next-match
func (h *LibraryHandler) NextMatch(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	page, err := session.NextMatch(r.Context())
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"page":     page,
		"snapshot": session.Snapshot(),
	})
}

// SetZoom handles POST /api/sessions/{sessionID}/zoom
func (h *LibraryHandler) SetZoom(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Scale float64 `json:"scale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	zoom, err := session.SetZoom(req.Scale)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"zoom": zoom})
}

// Outline handles GET /api/sessions/{sessionID}/outline
func (h *LibraryHandler) Outline(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	entries, err := session.Outline(r.Context())
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *LibraryHandler) session(w http.ResponseWriter, r *http.Request) (*reader.Session, bool) {
	userID := getUserID(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	session, err := h.sessions.Get(chi.URLParam(r, "sessionID"), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return session, true
}

func (h *LibraryHandler) respondSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, reader.ErrSessionNotReady) {
		respondError(w, http.StatusConflict, "Session is no longer active")
		return
	}
	respondError(w, http.StatusInternalServerError, "Session operation failed")
}

package handler

import (
	"encoding/json"
	"net/http"

	"namavruksha/internal/domain"
	"namavruksha/internal/middleware"
)

// respondJSON writes data as a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// getProfile returns the authenticated profile placed on the context by
// the auth middleware, or nil for anonymous requests
func getProfile(r *http.Request) *domain.UserProfile {
	if profile, ok := r.Context().Value(middleware.UserContextKey).(*domain.UserProfile); ok {
		return profile
	}
	return nil
}

// getUserID returns the authenticated user's id, or "" when anonymous
func getUserID(r *http.Request) string {
	if profile := getProfile(r); profile != nil {
		return profile.Sub
	}
	return ""
}

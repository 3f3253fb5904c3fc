package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"namavruksha/internal/domain"
	"namavruksha/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithProfile(role domain.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	profile := &domain.UserProfile{Sub: "user-1", Role: role}
	ctx := context.WithValue(req.Context(), UserContextKey, profile)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		userRole   domain.Role
		required   domain.Role
		wantStatus int
	}{
		{"admin reaches admin route", domain.RoleAdmin, domain.RoleAdmin, http.StatusOK},
		{"admin reaches moderator route", domain.RoleAdmin, domain.RoleModerator, http.StatusOK},
		{"moderator blocked from admin route", domain.RoleModerator, domain.RoleAdmin, http.StatusForbidden},
		{"user blocked from moderator route", domain.RoleUser, domain.RoleModerator, http.StatusForbidden},
		{"user reaches user route", domain.RoleUser, domain.RoleUser, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler := RequireRole(tt.required, newLogger(t))(okHandler())
			handler.ServeHTTP(rec, requestWithProfile(tt.userRole))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole_NoProfileInContext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)

	RequireRole(domain.RoleAdmin, newLogger(t))(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	var seen string
	handler := RequestID(newLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(RequestIDContextKey).(string)
	}))
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestCORS_Preflight(t *testing.T) {
	config := &CORSConfig{
		AllowedOrigins:   []string{"https://namavruksha.org"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           3600,
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/entries", nil)
	req.Header.Set("Origin", "https://namavruksha.org")

	CORS(config, newLogger(t))(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://namavruksha.org", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	config := &CORSConfig{AllowedOrigins: []string{"https://namavruksha.org"}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	CORS(config, newLogger(t))(okHandler()).ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

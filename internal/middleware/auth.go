package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"
	"namavruksha/pkg/errors"
	"namavruksha/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserContextKey is the key for the authenticated profile in context
	UserContextKey ContextKey = "user"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// Auth creates an authentication middleware. The bearer token is
// validated, the devotee record is ensured (registering on first
// sign-in), and the profile with its resolved privilege tier is placed
// on the request context.
func Auth(authService service.AuthService, users *service.UserService, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Authorization header is required"), logger)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid authorization header format"), logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Token is required"), logger)
				return
			}

			ctx := r.Context()
			profile, err := authService.ValidateToken(ctx, token)
			if err != nil {
				logger.WithError(err).Error("Token validation failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired token"), logger)
				return
			}

			user, err := users.EnsureUser(ctx, profile)
			if err != nil {
				logger.WithError(err).Error("Failed to resolve devotee record")
				writeErrorResponse(w, errors.NewInternalError("Failed to resolve user", err), logger)
				return
			}
			profile.Role = user.Role

			ctx = context.WithValue(ctx, UserContextKey, profile)
			r = r.WithContext(ctx)

			logger.WithField("user_id", profile.Sub).Debug("User authenticated successfully")

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a route on a minimum privilege tier. It must run
// after Auth.
func RequireRole(role domain.Role, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := r.Context().Value(UserContextKey).(*domain.UserProfile)
			if !ok {
				writeErrorResponse(w, errors.NewAuthenticationError("Authentication required"), logger)
				return
			}

			if !profile.Role.AtLeast(role) {
				logger.WithFields(map[string]interface{}{
					"user_id":       profile.Sub,
					"required_role": role,
					"user_role":     profile.Role,
				}).Warn("Insufficient privileges")
				writeErrorResponse(w, errors.NewAuthorizationError("Insufficient privileges"), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			logger = logger.WithField("request_id", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// generateRequestID generates a simple request ID
func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Error("Request error")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode error response")
	}
}

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"namavruksha/internal/domain"
	"namavruksha/internal/service"
	"namavruksha/pkg/errors"
	"namavruksha/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// Service implements the AuthService interface. It accepts the token
// shapes the apps actually present: Supabase session JWTs (HS256, signed
// with the project secret), Google ID tokens (RS256), and Google OAuth
// access tokens (opaque, verified against the userinfo endpoint).
type Service struct {
	googleClientID string
	supabaseSecret string
	httpClient     *http.Client
	logger         *logger.Logger
}

// NewService creates a new auth service
func NewService(googleClientID, supabaseSecret string, logger *logger.Logger) service.AuthService {
	return &Service{
		googleClientID: googleClientID,
		supabaseSecret: supabaseSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// ValidateToken resolves a bearer token to a devotee profile
func (s *Service) ValidateToken(ctx context.Context, token string) (*domain.UserProfile, error) {
	if isGoogleAccessToken(token) {
		s.logger.Debug("Token identified as Google access token")
		return s.validateGoogleAccessToken(ctx, token)
	}

	if isJWTToken(token) {
		// Supabase session tokens and Google ID tokens are both JWTs;
		// try the project secret first, then Google's signing keys.
		if profile, err := s.validateSupabaseJWT(token); err == nil {
			return profile, nil
		}
		s.logger.Debug("Not a Supabase JWT, trying Google ID token validation")
		return s.validateGoogleIDToken(ctx, token)
	}

	s.logger.Error("Unrecognized token format")
	return nil, errors.NewAuthenticationError("Unrecognized token format")
}

// validateSupabaseJWT verifies an HS256 session token issued by the
// hosted auth service
func (s *Service) validateSupabaseJWT(tokenString string) (*domain.UserProfile, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.supabaseSecret), nil
	})
	if err != nil {
		return nil, errors.NewAuthenticationError("Invalid or expired session token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.NewAuthenticationError("Session token has no subject")
	}

	profile := &domain.UserProfile{
		Sub:   sub,
		Email: stringClaim(claims, "email"),
	}

	// Supabase stores the display name inside user_metadata
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if name, ok := meta["full_name"].(string); ok {
			profile.Name = name
		} else if name, ok := meta["name"].(string); ok {
			profile.Name = name
		}
	}

	s.logger.WithField("user_id", profile.Sub).Debug("Supabase JWT validated")
	return profile, nil
}

// validateGoogleIDToken verifies an RS256 ID token against Google's keys
func (s *Service) validateGoogleIDToken(ctx context.Context, tokenString string) (*domain.UserProfile, error) {
	payload, err := idtoken.Validate(ctx, tokenString, s.googleClientID)
	if err != nil {
		s.logger.WithError(err).Error("Google ID token validation failed")
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}

	profile := &domain.UserProfile{
		Sub:   payload.Subject,
		Email: claimString(payload.Claims, "email"),
		Name:  claimString(payload.Claims, "name"),
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		profile.EmailVerified = verified
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		profile.Picture = picture
	}

	s.logger.WithField("user_id", profile.Sub).Debug("Google ID token validated")
	return profile, nil
}

// validateGoogleAccessToken resolves an opaque access token through the
// OpenID userinfo endpoint, using the token as the request credential
func (s *Service) validateGoogleAccessToken(ctx context.Context, token string) (*domain.UserProfile, error) {
	oauthToken := &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}

	oauth2Config := &oauth2.Config{}
	client := oauth2Config.Client(ctx, oauthToken)
	client.Timeout = 30 * time.Second

	resp, err := client.Get("https://openidconnect.googleapis.com/v1/userinfo")
	if err != nil {
		s.logger.WithError(err).Error("Failed to call userinfo endpoint")
		return nil, errors.NewAuthenticationError("Failed to validate token")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errors.NewAuthenticationError("Invalid or expired Google token")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.WithFields(map[string]interface{}{
			"status_code":   resp.StatusCode,
			"response_body": string(body),
		}).Error("Userinfo endpoint returned error")
		return nil, errors.NewAuthenticationError("Token validation failed")
	}

	var info struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.NewInternalError("Failed to decode userinfo response", err)
	}
	if info.Sub == "" {
		return nil, errors.NewAuthenticationError("Userinfo response has no subject")
	}

	profile := &domain.UserProfile{
		Sub:           info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		Name:          info.Name,
		Picture:       info.Picture,
	}

	s.logger.WithField("user_id", profile.Sub).Debug("Google access token validated")
	return profile, nil
}

// isGoogleAccessToken reports whether the token looks like an opaque
// Google OAuth access token
func isGoogleAccessToken(token string) bool {
	return strings.HasPrefix(token, "ya29.")
}

// isJWTToken reports whether the token has the three-segment JWT shape
func isJWTToken(token string) bool {
	return strings.Count(token, ".") == 2
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

func claimString(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

package auth

import (
	"context"
	"testing"
	"time"

	"namavruksha/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-supabase-jwt-secret"

func newTestService(t *testing.T) *Service {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return &Service{
		googleClientID: "test-client-id",
		supabaseSecret: testSecret,
		logger:         log,
	}
}

func signSessionToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken_SupabaseJWT(t *testing.T) {
	svc := newTestService(t)

	tokenString := signSessionToken(t, jwt.MapClaims{
		"sub":   "user-123",
		"email": "devotee@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"full_name": "Test Devotee",
		},
	}, testSecret)

	profile, err := svc.ValidateToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", profile.Sub)
	assert.Equal(t, "devotee@example.com", profile.Email)
	assert.Equal(t, "Test Devotee", profile.Name)
}

func TestValidateToken_SupabaseJWT_WrongSecret(t *testing.T) {
	svc := newTestService(t)

	tokenString := signSessionToken(t, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, "some-other-secret")

	// Falls through to Google ID token validation, which also rejects it.
	_, err := svc.ValidateToken(context.Background(), tokenString)
	assert.Error(t, err)
}

func TestValidateToken_SupabaseJWT_Expired(t *testing.T) {
	svc := newTestService(t)

	tokenString := signSessionToken(t, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	_, err := svc.ValidateToken(context.Background(), tokenString)
	assert.Error(t, err)
}

func TestValidateToken_SupabaseJWT_MissingSubject(t *testing.T) {
	svc := newTestService(t)

	tokenString := signSessionToken(t, jwt.MapClaims{
		"email": "devotee@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	_, err := svc.validateSupabaseJWT(tokenString)
	assert.Error(t, err)
}

func TestValidateToken_UnrecognizedFormat(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestTokenShapeDetection(t *testing.T) {
	assert.True(t, isGoogleAccessToken("ya29.a0AfB_byDummy"))
	assert.False(t, isGoogleAccessToken("eyJhbGciOiJIUzI1NiJ9.payload.sig"))
	assert.True(t, isJWTToken("header.payload.sig"))
	assert.False(t, isJWTToken("ya29.a0AfB_byDummy"))
}

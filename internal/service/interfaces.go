package service

import (
	"context"

	"namavruksha/internal/domain"
)

// AuthService validates bearer tokens and resolves the devotee profile
type AuthService interface {
	// ValidateToken accepts either a Supabase session JWT or a Google
	// token and returns the authenticated profile
	ValidateToken(ctx context.Context, token string) (*domain.UserProfile, error)
}

// BlobStore fetches binary objects from the hosted object storage
type BlobStore interface {
	// Fetch returns the raw bytes stored at path inside the library bucket
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Mailer sends fire-and-forget transactional email. Delivery failures are
// logged by implementations, never returned to callers.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string)
}

// Services aggregates the service interfaces wired by the container
type Services struct {
	Auth AuthService
}

package repository

import (
	"context"
	"time"

	"namavruksha/internal/domain"
)

// EntryRepository defines the interface for count entry data operations
type EntryRepository interface {
	// Create stores a new count entry
	Create(ctx context.Context, entry *domain.CountEntry) error

	// ListByUser retrieves all entries submitted by a devotee
	ListByUser(ctx context.Context, userID string) ([]domain.CountEntry, error)

	// ListBySankalpa retrieves all entries logged against a campaign
	ListBySankalpa(ctx context.Context, sankalpaID string) ([]domain.CountEntry, error)

	// ListByUserAndRange retrieves a devotee's entries with entry dates
	// inside [start, end] inclusive
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]domain.CountEntry, error)
}

// UserRepository defines the interface for devotee data operations
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context, limit int) ([]domain.User, error)
	SetRole(ctx context.Context, id string, role domain.Role) error
}

// SankalpaRepository defines the interface for campaign data operations
type SankalpaRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Sankalpa, error)
	ListActive(ctx context.Context) ([]domain.Sankalpa, error)
	ListAll(ctx context.Context) ([]domain.Sankalpa, error)
	Create(ctx context.Context, s *domain.Sankalpa) error
	Update(ctx context.Context, s *domain.Sankalpa) error
}

// BookRepository defines the interface for library metadata operations
type BookRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Create(ctx context.Context, b *domain.Book) error
	SetPageCount(ctx context.Context, id string, pageCount int) error
}

// FeedbackRepository defines the interface for feedback operations
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	List(ctx context.Context, includeResolved bool) ([]domain.Feedback, error)
}

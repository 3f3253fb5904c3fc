package repository

import (
	"context"
	"fmt"

	"namavruksha/internal/domain"
	"namavruksha/pkg/database"

	"github.com/google/uuid"
)

// feedbackRepository handles feedback operations with PostgreSQL
type feedbackRepository struct {
	db *database.PostgresDB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *database.PostgresDB) FeedbackRepository {
	return &feedbackRepository{
		db: db,
	}
}

// Create stores a new feedback message
func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	query := `
		INSERT INTO feedback (id, user_id, subject, message, resolved)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, f.ID, f.UserID, f.Subject, f.Message).Scan(&f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

// List retrieves feedback messages, newest first
func (r *feedbackRepository) List(ctx context.Context, includeResolved bool) ([]domain.Feedback, error) {
	query := `
		SELECT id, user_id, subject, message, resolved, created_at
		FROM feedback`
	if !includeResolved {
		query += ` WHERE resolved = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Feedback, 0)
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Subject, &f.Message, &f.Resolved, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		items = append(items, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return items, nil
}

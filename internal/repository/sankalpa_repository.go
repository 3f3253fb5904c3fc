package repository

import (
	"context"
	"errors"
	"fmt"

	"namavruksha/internal/domain"
	"namavruksha/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// sankalpaRepository handles campaign operations with PostgreSQL
type sankalpaRepository struct {
	db *database.PostgresDB
}

// NewSankalpaRepository creates a new sankalpa repository
func NewSankalpaRepository(db *database.PostgresDB) SankalpaRepository {
	return &sankalpaRepository{
		db: db,
	}
}

const selectSankalpas = `
	SELECT id, name, description, deity, target, start_date, end_date, active, created_by, created_at
	FROM sankalpas`

// GetByID retrieves a campaign by ID. Returns nil, nil when absent.
func (r *sankalpaRepository) GetByID(ctx context.Context, id string) (*domain.Sankalpa, error) {
	var s domain.Sankalpa

	err := r.db.Pool.QueryRow(ctx, selectSankalpas+` WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Deity, &s.Target,
		&s.StartDate, &s.EndDate, &s.Active, &s.CreatedBy, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sankalpa: %w", err)
	}

	return &s, nil
}

// ListActive retrieves currently active campaigns
func (r *sankalpaRepository) ListActive(ctx context.Context) ([]domain.Sankalpa, error) {
	return r.list(ctx, selectSankalpas+` WHERE active = TRUE ORDER BY created_at DESC`)
}

// ListAll retrieves every campaign, active or not
func (r *sankalpaRepository) ListAll(ctx context.Context) ([]domain.Sankalpa, error) {
	return r.list(ctx, selectSankalpas+` ORDER BY created_at DESC`)
}

func (r *sankalpaRepository) list(ctx context.Context, query string) ([]domain.Sankalpa, error) {
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sankalpas: %w", err)
	}
	defer rows.Close()

	sankalpas := make([]domain.Sankalpa, 0)
	for rows.Next() {
		var s domain.Sankalpa
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Deity, &s.Target,
			&s.StartDate, &s.EndDate, &s.Active, &s.CreatedBy, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sankalpa row: %w", err)
		}
		sankalpas = append(sankalpas, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sankalpa rows: %w", err)
	}

	return sankalpas, nil
}

// Create stores a new campaign
func (r *sankalpaRepository) Create(ctx context.Context, s *domain.Sankalpa) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sankalpas (id, name, description, deity, target, start_date, end_date, active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		s.ID, s.Name, s.Description, s.Deity, s.Target,
		s.StartDate, s.EndDate, s.Active, s.CreatedBy,
	).Scan(&s.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create sankalpa: %w", err)
	}

	return nil
}

// Update rewrites the mutable fields of a campaign
func (r *sankalpaRepository) Update(ctx context.Context, s *domain.Sankalpa) error {
	query := `
		UPDATE sankalpas
		SET name = $2, description = $3, target = $4, active = $5
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, s.ID, s.Name, s.Description, s.Target, s.Active)
	if err != nil {
		return fmt.Errorf("failed to update sankalpa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSankalpaNotFound
	}

	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"namavruksha/internal/domain"
	"namavruksha/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// entryRepository handles count entry operations with PostgreSQL
type entryRepository struct {
	db *database.PostgresDB
}

// NewEntryRepository creates a new count entry repository
func NewEntryRepository(db *database.PostgresDB) EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// Create stores a new count entry. The ID and CreatedAt fields are filled
// in on the passed entry.
func (r *entryRepository) Create(ctx context.Context, entry *domain.CountEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO count_entries
			(id, user_id, sankalpa_id, count, entry_date, period_start, period_end, source, devotee_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.SankalpaID,
		entry.Count,
		entry.EntryDate,
		entry.PeriodStart,
		entry.PeriodEnd,
		string(entry.Source),
		entry.DevoteeCount,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create count entry: %w", err)
	}

	return nil
}

// ListByUser retrieves all entries submitted by a devotee
func (r *entryRepository) ListByUser(ctx context.Context, userID string) ([]domain.CountEntry, error) {
	query := selectEntries + ` WHERE user_id = $1 ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by user: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListBySankalpa retrieves all entries logged against a campaign
func (r *entryRepository) ListBySankalpa(ctx context.Context, sankalpaID string) ([]domain.CountEntry, error) {
	query := selectEntries + ` WHERE sankalpa_id = $1 ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, sankalpaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by sankalpa: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByUserAndRange retrieves a devotee's entries with entry dates inside
// [start, end] inclusive. Bounds are calendar days.
func (r *entryRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]domain.CountEntry, error) {
	query := selectEntries + `
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date ASC`

	rows, err := r.db.Pool.Query(ctx, query, userID, domain.DayOf(start), domain.DayOf(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by range: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

const selectEntries = `
	SELECT id, user_id, sankalpa_id, count, entry_date, period_start, period_end, source, devotee_count, created_at
	FROM count_entries`

func scanEntries(rows pgx.Rows) ([]domain.CountEntry, error) {
	entries := make([]domain.CountEntry, 0)

	for rows.Next() {
		var entry domain.CountEntry
		var source string

		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.SankalpaID,
			&entry.Count,
			&entry.EntryDate,
			&entry.PeriodStart,
			&entry.PeriodEnd,
			&source,
			&entry.DevoteeCount,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan count entry row: %w", err)
		}

		entry.Source = domain.EntrySource(source)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count entry rows: %w", err)
	}

	return entries, nil
}

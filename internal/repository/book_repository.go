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

// bookRepository handles library metadata operations with PostgreSQL
type bookRepository struct {
	db *database.PostgresDB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *database.PostgresDB) BookRepository {
	return &bookRepository{
		db: db,
	}
}

const selectBooks = `
	SELECT id, title, author, language, description, storage_path, cover_url, page_count, added_by, created_at
	FROM books`

// GetByID retrieves a book by ID. Returns nil, nil when absent.
func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	var b domain.Book

	err := r.db.Pool.QueryRow(ctx, selectBooks+` WHERE id = $1`, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Language, &b.Description,
		&b.StoragePath, &b.CoverURL, &b.PageCount, &b.AddedBy, &b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &b, nil
}

// List retrieves all library books ordered by title
func (r *bookRepository) List(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.db.Pool.Query(ctx, selectBooks+` ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := make([]domain.Book, 0)
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Language, &b.Description,
			&b.StoragePath, &b.CoverURL, &b.PageCount, &b.AddedBy, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}

	return books, nil
}

// Create stores a new book record
func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query := `
		INSERT INTO books (id, title, author, language, description, storage_path, cover_url, page_count, added_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		b.ID, b.Title, b.Author, b.Language, b.Description,
		b.StoragePath, b.CoverURL, b.PageCount, b.AddedBy,
	).Scan(&b.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// SetPageCount records the parsed page count after a book is first opened
func (r *bookRepository) SetPageCount(ctx context.Context, id string, pageCount int) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE books SET page_count = $2 WHERE id = $1`, id, pageCount)
	if err != nil {
		return fmt.Errorf("failed to update book page count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

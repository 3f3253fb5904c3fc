package repository

import (
	"context"
	"errors"
	"fmt"

	"namavruksha/internal/domain"
	"namavruksha/pkg/database"

	"github.com/jackc/pgx/v5"
)

// userRepository handles devotee record operations with PostgreSQL
type userRepository struct {
	db *database.PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.PostgresDB) UserRepository {
	return &userRepository{
		db: db,
	}
}

const selectUsers = `
	SELECT id, email, name, phone, city, role, created_at
	FROM users`

// GetByID retrieves a devotee by ID. Returns nil, nil when absent.
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.scanOne(r.db.Pool.QueryRow(ctx, selectUsers+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a devotee by email. Returns nil, nil when absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.scanOne(r.db.Pool.QueryRow(ctx, selectUsers+` WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// Create stores a new devotee record
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	query := `
		INSERT INTO users (id, email, name, phone, city, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Phone,
		user.City,
		string(user.Role),
	).Scan(&user.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// List retrieves devotees ordered by registration time, newest first
func (r *userRepository) List(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Pool.Query(ctx, selectUsers+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		var role string

		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.City, &role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}

		user.Role = domain.Role(role)
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// SetRole updates a devotee's privilege tier
func (r *userRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, string(role))
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string

	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.City, &role, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	return &user, nil
}

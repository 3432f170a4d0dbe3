package postgres

import (
	"context"
	"database/sql"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// UserRepository is a PostgreSQL implementation of repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `id, name, email, role, phone, rating, review_count, joined_date, avatar, password_hash`

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Role,
		user.Phone,
		user.Rating,
		user.ReviewCount,
		user.JoinedDate,
		user.Avatar,
		user.PasswordHash,
	)

	return translateError(err)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, email))
}

// UpdateRating sets the rating aggregate for a user.
func (r *UserRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	query := `UPDATE users SET rating = $1, review_count = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, rating, reviewCount, id)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var avatar sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.Phone,
		&user.Rating,
		&user.ReviewCount,
		&user.JoinedDate,
		&avatar,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if avatar.Valid {
		user.Avatar = avatar.String
	}

	return &user, nil
}

// Ensure UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)

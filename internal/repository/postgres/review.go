package postgres

import (
	"context"
	"database/sql"
	"errors"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// ReviewRepository is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewRepository struct {
	q Querier
}

// NewReviewRepository creates a new PostgreSQL review repository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{q: db}
}

// NewReviewRepositoryWithTx creates a review repository using a transaction.
func NewReviewRepositoryWithTx(tx *sql.Tx) *ReviewRepository {
	return &ReviewRepository{q: tx}
}

const reviewColumns = `id, booking_id, from_user_id, to_user_id, rating, comment, created_date`

// Create persists a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		review.ID,
		review.BookingID,
		review.FromUserID,
		review.ToUserID,
		review.Rating,
		review.Comment,
		review.CreatedDate,
	)

	return translateError(err)
}

// GetByID retrieves a review by ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(r.q.QueryRowContext(ctx, query, id))
}

// GetAll retrieves all reviews.
func (r *ReviewRepository) GetAll(ctx context.Context) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_date DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		var comment sql.NullString
		if err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.FromUserID,
			&review.ToUserID,
			&review.Rating,
			&comment,
			&review.CreatedDate,
		); err != nil {
			return nil, err
		}
		if comment.Valid {
			review.Comment = comment.String
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

// GetByBookingAndAuthor retrieves the review an author wrote for a booking.
// Returns nil if none exists.
func (r *ReviewRepository) GetByBookingAndAuthor(ctx context.Context, bookingID, fromUserID string) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE booking_id = $1 AND from_user_id = $2`

	review, err := scanReview(r.q.QueryRowContext(ctx, query, bookingID, fromUserID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return review, nil
}

// AggregateForUser returns the average rating and review count across all
// reviews received by a user. A user with no reviews gets (0, 0).
func (r *ReviewRepository) AggregateForUser(ctx context.Context, userID string) (float64, int, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE to_user_id = $1`

	var rating float64
	var count int
	if err := r.q.QueryRowContext(ctx, query, userID).Scan(&rating, &count); err != nil {
		return 0, 0, err
	}

	return rating, count, nil
}

// Update updates an existing review.
func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, review.Rating, review.Comment, review.ID)
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

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
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

func scanReview(row *sql.Row) (*domain.Review, error) {
	var review domain.Review
	var comment sql.NullString

	err := row.Scan(
		&review.ID,
		&review.BookingID,
		&review.FromUserID,
		&review.ToUserID,
		&review.Rating,
		&comment,
		&review.CreatedDate,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if comment.Valid {
		review.Comment = comment.String
	}

	return &review, nil
}

// Ensure ReviewRepository implements repository.ReviewRepository.
var _ repository.ReviewRepository = (*ReviewRepository)(nil)

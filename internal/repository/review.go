package repository

import (
	"context"

	"loadlink/internal/domain"
)

// ReviewRepository defines the persistence operations for reviews.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by ID.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// GetAll retrieves all reviews.
	GetAll(ctx context.Context) ([]*domain.Review, error)

	// GetByBookingAndAuthor retrieves the review an author wrote for a
	// booking. Returns nil if none exists.
	GetByBookingAndAuthor(ctx context.Context, bookingID, fromUserID string) (*domain.Review, error)

	// AggregateForUser returns the average rating and review count across
	// all reviews received by a user.
	AggregateForUser(ctx context.Context, userID string) (float64, int, error)

	// Update updates an existing review.
	Update(ctx context.Context, review *domain.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id string) error
}

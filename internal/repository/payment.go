package repository

import (
	"context"

	"loadlink/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByBookingID retrieves the payment for a booking.
	// Returns nil if the booking has no payment.
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)

	// GetByUserID retrieves every payment where the user is payer or
	// receiver. An empty slice is a valid result.
	GetByUserID(ctx context.Context, userID string) ([]*domain.Payment, error)
}

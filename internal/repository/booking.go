package repository

import (
	"context"

	"loadlink/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByIDForUpdate retrieves a booking by ID, locking the row for the
	// duration of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error)

	// GetAll retrieves all bookings.
	GetAll(ctx context.Context) ([]*domain.Booking, error)

	// GetByShipperID retrieves all bookings created by a shipper.
	GetByShipperID(ctx context.Context, shipperID string) ([]*domain.Booking, error)

	// GetByTripID retrieves all bookings on a trip. If shipperID is
	// non-empty the result is restricted to that shipper's bookings.
	GetByTripID(ctx context.Context, tripID, shipperID string) ([]*domain.Booking, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error

	// Delete removes a booking.
	Delete(ctx context.Context, id string) error
}

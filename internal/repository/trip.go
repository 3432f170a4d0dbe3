package repository

import (
	"context"

	"loadlink/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetByIDForUpdate retrieves a trip by ID, locking the row for the
	// duration of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error)

	// GetByStatus retrieves all trips with the given status.
	GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error)

	// GetByCarrierID retrieves all trips owned by a carrier.
	GetByCarrierID(ctx context.Context, carrierID string) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// Delete removes a trip.
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"loadlink/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByCarrierID retrieves all vehicles owned by a carrier.
	GetByCarrierID(ctx context.Context, carrierID string) ([]*domain.Vehicle, error)

	// Update updates an existing vehicle.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// Delete removes a vehicle.
	Delete(ctx context.Context, id string) error
}

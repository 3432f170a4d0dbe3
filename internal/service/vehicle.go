package service

import (
	"context"

	"github.com/google/uuid"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// VehicleService handles carrier vehicle operations.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// CreateVehicleRequest contains the parameters for registering a vehicle.
type CreateVehicleRequest struct {
	Type         string
	CapacityKg   int
	LicensePlate string
	RCNumber     string
	IsActive     bool
}

// Create registers a new vehicle for the carrier. Duplicate license plates
// or RC numbers surface as repository.ErrDuplicate.
func (s *VehicleService) Create(ctx context.Context, actor domain.Principal, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if actor.Role != domain.RoleCarrier {
		return nil, ErrCarrierOnly
	}

	vehicleType := domain.VehicleType(req.Type)
	if !vehicleType.Valid() {
		return nil, ErrInvalidVehicleType
	}

	if req.CapacityKg <= 0 {
		return nil, ErrInvalidCapacity
	}

	vehicle := &domain.Vehicle{
		ID:           uuid.New().String(),
		CarrierID:    actor.ID,
		Type:         vehicleType,
		CapacityKg:   req.CapacityKg,
		LicensePlate: req.LicensePlate,
		RCNumber:     req.RCNumber,
		IsActive:     req.IsActive,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Get retrieves a vehicle owned by the actor.
func (s *VehicleService) Get(ctx context.Context, actor domain.Principal, vehicleID string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.CarrierID != actor.ID {
		return nil, ErrNotVehicleOwner
	}

	return vehicle, nil
}

// ListMine retrieves all vehicles owned by the actor.
func (s *VehicleService) ListMine(ctx context.Context, actor domain.Principal) ([]*domain.Vehicle, error) {
	if actor.Role != domain.RoleCarrier {
		return nil, ErrCarrierOnly
	}

	return s.vehicleRepo.GetByCarrierID(ctx, actor.ID)
}

// UpdateVehicleRequest contains the parameters for updating a vehicle.
// Nil fields are left unchanged.
type UpdateVehicleRequest struct {
	Type         *string
	CapacityKg   *int
	LicensePlate *string
	RCNumber     *string
	IsActive     *bool
}

// Update modifies a vehicle owned by the actor. Capacity changes do not
// propagate to existing trips; their total_capacity is a creation-time
// snapshot.
func (s *VehicleService) Update(ctx context.Context, actor domain.Principal, vehicleID string, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.CarrierID != actor.ID {
		return nil, ErrNotVehicleOwner
	}

	if req.Type != nil {
		vehicleType := domain.VehicleType(*req.Type)
		if !vehicleType.Valid() {
			return nil, ErrInvalidVehicleType
		}
		vehicle.Type = vehicleType
	}

	if req.CapacityKg != nil {
		if *req.CapacityKg <= 0 {
			return nil, ErrInvalidCapacity
		}
		vehicle.CapacityKg = *req.CapacityKg
	}

	if req.LicensePlate != nil {
		vehicle.LicensePlate = *req.LicensePlate
	}

	if req.RCNumber != nil {
		vehicle.RCNumber = *req.RCNumber
	}

	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Delete removes a vehicle owned by the actor. Trips referencing the
// vehicle are removed by the store's cascade rules.
func (s *VehicleService) Delete(ctx context.Context, actor domain.Principal, vehicleID string) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	if vehicle.CarrierID != actor.ID {
		return ErrNotVehicleOwner
	}

	return s.vehicleRepo.Delete(ctx, vehicleID)
}

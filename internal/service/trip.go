package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"loadlink/internal/domain"
	"loadlink/internal/redis"
	"loadlink/internal/repository"
)

// TripService owns trip CRUD and the trip capacity invariants. It is the
// only component that debits or credits a trip's available capacity.
type TripService struct {
	tripRepo    repository.TripRepository
	vehicleRepo repository.VehicleRepository
	cacheStore  redis.CacheStoreInterface
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	cacheStore redis.CacheStoreInterface,
) *TripService {
	return &TripService{
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		cacheStore:  cacheStore,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	VehicleID     string
	Origin        string
	Destination   string
	DepartureDate time.Time
	ArrivalDate   time.Time
	PricePerKg    float64
	TotalCapacity int // 0 means snapshot the vehicle's capacity
	Description   string
}

// Create creates a trip for a carrier-owned vehicle. TotalCapacity is a
// snapshot of the vehicle's capacity unless a smaller override is given;
// available capacity starts equal to total.
func (s *TripService) Create(ctx context.Context, actor domain.Principal, req CreateTripRequest) (*domain.Trip, error) {
	if actor.Role != domain.RoleCarrier {
		return nil, ErrCarrierOnly
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.CarrierID != actor.ID {
		return nil, ErrNotVehicleOwner
	}

	if !req.ArrivalDate.After(req.DepartureDate) {
		return nil, ErrInvalidDateRange
	}

	if req.PricePerKg <= 0 {
		return nil, ErrInvalidPrice
	}

	totalCapacity := vehicle.CapacityKg
	if req.TotalCapacity > 0 {
		if req.TotalCapacity > vehicle.CapacityKg {
			return nil, ErrCapacityExceedsVehicle
		}
		totalCapacity = req.TotalCapacity
	}

	trip := &domain.Trip{
		ID:                uuid.New().String(),
		CarrierID:         actor.ID,
		VehicleID:         req.VehicleID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		DepartureDate:     req.DepartureDate,
		ArrivalDate:       req.ArrivalDate,
		PricePerKg:        req.PricePerKg,
		TotalCapacity:     totalCapacity,
		AvailableCapacity: totalCapacity,
		Status:            domain.TripStatusActive,
		Description:       req.Description,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)

	return trip, nil
}

// Reserve debits capacity from a trip. It must be called with the
// transaction-scoped trip repository of the booking mutation it belongs to,
// after the trip row was locked.
func (s *TripService) Reserve(ctx context.Context, tripRepo repository.TripRepository, trip *domain.Trip, amount int) error {
	if trip.Status != domain.TripStatusActive {
		return ErrTripNotActive
	}

	if amount > trip.AvailableCapacity {
		return ErrInsufficientCapacity
	}

	trip.AvailableCapacity -= amount

	return tripRepo.Update(ctx, trip)
}

// Release credits capacity back to a trip, clamped at total capacity. Like
// Reserve it runs inside the booking mutation's transaction.
func (s *TripService) Release(ctx context.Context, tripRepo repository.TripRepository, trip *domain.Trip, amount int) error {
	trip.AvailableCapacity += amount
	if trip.AvailableCapacity > trip.TotalCapacity {
		trip.AvailableCapacity = trip.TotalCapacity
	}

	return tripRepo.Update(ctx, trip)
}

// Get retrieves a trip by ID.
func (s *TripService) Get(ctx context.Context, tripID string) (*domain.Trip, error) {
	return s.tripRepo.GetByID(ctx, tripID)
}

// ListActive retrieves all active trips, served from the listing cache
// when warm.
func (s *TripService) ListActive(ctx context.Context) ([]*domain.Trip, error) {
	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetActiveTrips(ctx)
		if err != nil {
			logrus.WithError(err).Warn("trip listing cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	trips, err := s.tripRepo.GetByStatus(ctx, domain.TripStatusActive)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		if err := s.cacheStore.SetActiveTrips(ctx, trips); err != nil {
			logrus.WithError(err).Warn("trip listing cache write failed")
		}
	}

	return trips, nil
}

// ListMine retrieves the carrier's own trips.
func (s *TripService) ListMine(ctx context.Context, actor domain.Principal) ([]*domain.Trip, error) {
	if actor.Role != domain.RoleCarrier {
		return nil, ErrCarrierOnly
	}

	return s.tripRepo.GetByCarrierID(ctx, actor.ID)
}

// UpdateTripRequest contains the parameters for updating a trip.
// Nil fields are left unchanged.
type UpdateTripRequest struct {
	VehicleID         *string
	Origin            *string
	Destination       *string
	DepartureDate     *time.Time
	ArrivalDate       *time.Time
	PricePerKg        *float64
	AvailableCapacity *int
	Status            *string
	Description       *string
}

// Update modifies a trip owned by the actor. If an update pushes available
// capacity above total it is clamped down rather than rejected.
func (s *TripService) Update(ctx context.Context, actor domain.Principal, tripID string, req UpdateTripRequest) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.CarrierID != actor.ID {
		return nil, ErrNotTripOwner
	}

	if req.VehicleID != nil && *req.VehicleID != trip.VehicleID {
		vehicle, err := s.vehicleRepo.GetByID(ctx, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.CarrierID != actor.ID {
			return nil, ErrNotVehicleOwner
		}
		trip.VehicleID = *req.VehicleID
	}

	if req.Origin != nil {
		trip.Origin = *req.Origin
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.DepartureDate != nil {
		trip.DepartureDate = *req.DepartureDate
	}
	if req.ArrivalDate != nil {
		trip.ArrivalDate = *req.ArrivalDate
	}
	if !trip.ArrivalDate.After(trip.DepartureDate) {
		return nil, ErrInvalidDateRange
	}

	if req.PricePerKg != nil {
		if *req.PricePerKg <= 0 {
			return nil, ErrInvalidPrice
		}
		trip.PricePerKg = *req.PricePerKg
	}

	if req.AvailableCapacity != nil {
		if *req.AvailableCapacity < 0 {
			return nil, ErrInvalidCapacity
		}
		trip.AvailableCapacity = *req.AvailableCapacity
	}

	if req.Status != nil {
		status := domain.TripStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		trip.Status = status
	}

	if req.Description != nil {
		trip.Description = *req.Description
	}

	if trip.AvailableCapacity > trip.TotalCapacity {
		trip.AvailableCapacity = trip.TotalCapacity
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)

	return trip, nil
}

// Delete removes a trip owned by the actor. Bookings on the trip are
// removed by the store's cascade rules.
func (s *TripService) Delete(ctx context.Context, actor domain.Principal, tripID string) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return err
	}

	if trip.CarrierID != actor.ID {
		return ErrNotTripOwner
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return err
	}

	s.invalidateListing(ctx)

	return nil
}

// InvalidateListing drops the public listing cache. Exposed for the booking
// engine, which changes available capacity without going through Update.
func (s *TripService) InvalidateListing(ctx context.Context) {
	s.invalidateListing(ctx)
}

func (s *TripService) invalidateListing(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	if err := s.cacheStore.InvalidateActiveTrips(ctx); err != nil {
		logrus.WithError(err).Warn("trip listing cache invalidation failed")
	}
}

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

// tripLockTTL bounds how long a trip's booking lock can outlive a crashed
// request before SetNX expiry frees it.
const tripLockTTL = 10 * time.Second

// BookingService is the booking lifecycle engine. Every mutation runs in a
// single transaction: the trip row is locked, capacity is debited or
// credited through the TripService, and the booking row is written, so the
// two can never diverge.
type BookingService struct {
	txRunner    repository.TxRunner
	bookingRepo repository.BookingRepository
	tripRepo    repository.TripRepository
	tripService *TripService
	lockStore   redis.LockStoreInterface
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	txRunner repository.TxRunner,
	bookingRepo repository.BookingRepository,
	tripRepo repository.TripRepository,
	tripService *TripService,
	lockStore redis.LockStoreInterface,
) *BookingService {
	return &BookingService{
		txRunner:    txRunner,
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		tripService: tripService,
		lockStore:   lockStore,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	TripID     string
	LoadSizeKg int
	Notes      string
}

// Create books capacity on a trip for a shipper. The trip row is locked for
// the duration of the transaction so two shippers racing for the last
// kilograms are serialized; a short-lived Redis lock keeps hot trips from
// piling onto the row lock.
func (s *BookingService) Create(ctx context.Context, actor domain.Principal, req CreateBookingRequest) (*domain.Booking, error) {
	if actor.Role != domain.RoleShipper {
		return nil, ErrShipperOnly
	}

	if req.LoadSizeKg <= 0 {
		return nil, ErrInvalidLoadSize
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireTripLock(ctx, req.TripID, tripLockTTL)
		if err != nil {
			logrus.WithError(err).Warn("trip lock acquire failed, falling back to row lock")
		} else if locked {
			defer func() {
				if err := s.lockStore.ReleaseTripLock(ctx, req.TripID); err != nil {
					logrus.WithError(err).Warn("trip lock release failed")
				}
			}()
		}
	}

	var booking *domain.Booking
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, r repository.TxRepos) error {
		trip, err := r.Trips.GetByIDForUpdate(ctx, req.TripID)
		if err != nil {
			return err
		}

		if err := s.tripService.Reserve(ctx, r.Trips, trip, req.LoadSizeKg); err != nil {
			return err
		}

		booking = &domain.Booking{
			ID:          uuid.New().String(),
			TripID:      trip.ID,
			ShipperID:   actor.ID,
			LoadSizeKg:  req.LoadSizeKg,
			TotalPrice:  trip.PricePerKg * float64(req.LoadSizeKg),
			Status:      domain.BookingStatusPending,
			CreatedDate: time.Now(),
			Notes:       req.Notes,
		}

		return r.Bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.tripService.InvalidateListing(ctx)

	return booking, nil
}

// transitionRule says which roles may perform a transition. Shipper
// permission is always further restricted to the booking's own shipper,
// carrier permission to the trip's carrier.
type transitionRule struct {
	carrier bool
	shipper bool
}

type bookingTransition struct {
	from domain.BookingStatus
	to   domain.BookingStatus
}

// bookingTransitions is the full set of allowed status changes. The paid
// state is deliberately absent: it is reachable only through settlement.
var bookingTransitions = map[bookingTransition]transitionRule{
	{domain.BookingStatusPending, domain.BookingStatusAccepted}:    {carrier: true},
	{domain.BookingStatusPending, domain.BookingStatusRejected}:    {carrier: true},
	{domain.BookingStatusAccepted, domain.BookingStatusFulfilled}:  {carrier: true, shipper: true},
	{domain.BookingStatusFulfilled, domain.BookingStatusCompleted}: {carrier: true, shipper: true},
}

// Transition moves a booking to the target status if the transition table
// allows it for the actor. Rejection releases the booking's held capacity
// in the same transaction.
func (s *BookingService) Transition(ctx context.Context, actor domain.Principal, bookingID string, target domain.BookingStatus) (*domain.Booking, error) {
	if !target.Valid() {
		return nil, ErrInvalidStatus
	}

	var booking *domain.Booking
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, r repository.TxRepos) error {
		var err error
		booking, err = r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		trip, err := r.Trips.GetByIDForUpdate(ctx, booking.TripID)
		if err != nil {
			return err
		}

		if err := authorizeBookingActor(actor, booking, trip); err != nil {
			return err
		}

		rule, ok := bookingTransitions[bookingTransition{booking.Status, target}]
		if !ok {
			return ErrInvalidTransition
		}

		allowed := (rule.carrier && actor.Role == domain.RoleCarrier) ||
			(rule.shipper && actor.Role == domain.RoleShipper)
		if !allowed {
			return ErrNotAuthorized
		}

		now := time.Now()
		booking.Status = target

		switch target {
		case domain.BookingStatusAccepted:
			// The pickup QR exists from acceptance onward.
			booking.QRGenerated = true
			booking.QRGeneratedDate = now
		case domain.BookingStatusRejected:
			if err := s.tripService.Release(ctx, r.Trips, trip, booking.LoadSizeKg); err != nil {
				return err
			}
		case domain.BookingStatusFulfilled:
			booking.FulfilledDate = now
		}

		return r.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	if target == domain.BookingStatusRejected {
		s.tripService.InvalidateListing(ctx)
	}

	return booking, nil
}

// UpdateNotes changes the free-text notes on a booking. This is the only
// field a shipper may edit directly.
func (s *BookingService) UpdateNotes(ctx context.Context, actor domain.Principal, bookingID, notes string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetByID(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	if err := authorizeBookingActor(actor, booking, trip); err != nil {
		return nil, err
	}

	booking.Notes = notes

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// Get retrieves a booking; shippers can only read their own.
func (s *BookingService) Get(ctx context.Context, actor domain.Principal, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleShipper && booking.ShipperID != actor.ID {
		return nil, ErrNotAuthorized
	}

	return booking, nil
}

// List retrieves bookings visible to the actor: a shipper sees only their
// own, any other role sees the full set.
func (s *BookingService) List(ctx context.Context, actor domain.Principal) ([]*domain.Booking, error) {
	if actor.Role == domain.RoleShipper {
		return s.bookingRepo.GetByShipperID(ctx, actor.ID)
	}
	return s.bookingRepo.GetAll(ctx)
}

// ListByTrip retrieves bookings on a trip. Carriers must own the trip;
// shippers are restricted to their own bookings on it.
func (s *BookingService) ListByTrip(ctx context.Context, actor domain.Principal, tripID string) ([]*domain.Booking, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleCarrier && trip.CarrierID != actor.ID {
		return nil, ErrNotAuthorized
	}

	shipperFilter := ""
	if actor.Role == domain.RoleShipper {
		shipperFilter = actor.ID
	}

	return s.bookingRepo.GetByTripID(ctx, tripID, shipperFilter)
}

// Delete cancels a booking. Only pending and accepted bookings can be
// cancelled; the capacity they held is released in the same transaction.
func (s *BookingService) Delete(ctx context.Context, actor domain.Principal, bookingID string) error {
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, r repository.TxRepos) error {
		booking, err := r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		trip, err := r.Trips.GetByIDForUpdate(ctx, booking.TripID)
		if err != nil {
			return err
		}

		if err := authorizeBookingActor(actor, booking, trip); err != nil {
			return err
		}

		if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusAccepted {
			return ErrBookingNotCancellable
		}

		if err := s.tripService.Release(ctx, r.Trips, trip, booking.LoadSizeKg); err != nil {
			return err
		}

		return r.Bookings.Delete(ctx, bookingID)
	})
	if err != nil {
		return err
	}

	s.tripService.InvalidateListing(ctx)

	return nil
}

// authorizeBookingActor enforces the ownership policy shared by every
// booking operation: a shipper may act only on their own bookings, a
// carrier only on bookings tied to trips they own.
func authorizeBookingActor(actor domain.Principal, booking *domain.Booking, trip *domain.Trip) error {
	switch actor.Role {
	case domain.RoleShipper:
		if booking.ShipperID != actor.ID {
			return ErrNotAuthorized
		}
	case domain.RoleCarrier:
		if trip.CarrierID != actor.ID {
			return ErrNotAuthorized
		}
	default:
		return ErrNotAuthorized
	}
	return nil
}

package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
	"loadlink/internal/service"
)

// ──────────────────────────────────────────────
// 1. BOOKING CREATION & CAPACITY ACCOUNTING
// ──────────────────────────────────────────────

// lifecycleEnv wires the mock repositories into the real services the way
// wireServer does in production.
type lifecycleEnv struct {
	users    *MockUserRepository
	vehicles *MockVehicleRepository
	trips    *MockTripRepository
	bookings *MockBookingRepository
	payments *MockPaymentRepository
	reviews  *MockReviewRepository
	txRunner *MockTxRunner

	tripService    *service.TripService
	bookingService *service.BookingService
	paymentService *service.PaymentService
	reviewService  *service.ReviewService
}

func newLifecycleEnv() *lifecycleEnv {
	users := NewMockUserRepository()
	vehicles := NewMockVehicleRepository()
	trips := NewMockTripRepository()
	bookings := NewMockBookingRepository()
	payments := NewMockPaymentRepository()
	reviews := NewMockReviewRepository()

	txRunner := NewMockTxRunner(repository.TxRepos{
		Users:    users,
		Vehicles: vehicles,
		Trips:    trips,
		Bookings: bookings,
		Payments: payments,
		Reviews:  reviews,
	})

	tripService := service.NewTripService(trips, vehicles, nil)

	return &lifecycleEnv{
		users:          users,
		vehicles:       vehicles,
		trips:          trips,
		bookings:       bookings,
		payments:       payments,
		reviews:        reviews,
		txRunner:       txRunner,
		tripService:    tripService,
		bookingService: service.NewBookingService(txRunner, bookings, trips, tripService, nil),
		paymentService: service.NewPaymentService(txRunner, payments),
		reviewService:  service.NewReviewService(txRunner, reviews, bookings, trips),
	}
}

func (e *lifecycleEnv) addActiveTrip(id, carrierID string, capacity int, pricePerKg float64) *domain.Trip {
	trip := &domain.Trip{
		ID:                id,
		CarrierID:         carrierID,
		VehicleID:         "vehicle-1",
		Origin:            "Mumbai",
		Destination:       "Delhi",
		DepartureDate:     time.Now().Add(24 * time.Hour),
		ArrivalDate:       time.Now().Add(48 * time.Hour),
		PricePerKg:        pricePerKg,
		TotalCapacity:     capacity,
		AvailableCapacity: capacity,
		Status:            domain.TripStatusActive,
	}
	e.trips.AddTrip(trip)
	return trip
}

func shipper(id string) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleShipper}
}

func carrier(id string) domain.Principal {
	return domain.Principal{ID: id, Role: domain.RoleCarrier}
}

func TestBookingCreate_DebitsCapacity(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 2.5)

	booking, err := env.bookingService.Create(context.Background(), shipper("shipper-1"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 600,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
	if booking.TotalPrice != 1500 {
		t.Errorf("expected total price 1500, got %f", booking.TotalPrice)
	}

	trip := env.trips.GetTrip("trip-1")
	if trip.AvailableCapacity != 400 {
		t.Errorf("expected available capacity 400, got %d", trip.AvailableCapacity)
	}
}

func TestBookingCreate_InsufficientCapacity_LeavesTripUnchanged(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 500, 1.0)

	_, err := env.bookingService.Create(context.Background(), shipper("shipper-1"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 600,
	})
	if !errors.Is(err, service.ErrInsufficientCapacity) {
		t.Fatalf("expected ErrInsufficientCapacity, got: %v", err)
	}

	trip := env.trips.GetTrip("trip-1")
	if trip.AvailableCapacity != 500 {
		t.Errorf("expected capacity untouched at 500, got %d", trip.AvailableCapacity)
	}
	if env.bookings.CountBookings() != 0 {
		t.Errorf("expected no bookings, got %d", env.bookings.CountBookings())
	}
}

func TestBookingCreate_CarrierRole_Fails(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 500, 1.0)

	_, err := env.bookingService.Create(context.Background(), carrier("carrier-1"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 100,
	})
	if !errors.Is(err, service.ErrShipperOnly) {
		t.Fatalf("expected ErrShipperOnly, got: %v", err)
	}
}

func TestBookingCreate_NonPositiveLoad_Fails(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 500, 1.0)

	for _, load := range []int{0, -10} {
		_, err := env.bookingService.Create(context.Background(), shipper("shipper-1"), service.CreateBookingRequest{
			TripID:     "trip-1",
			LoadSizeKg: load,
		})
		if !errors.Is(err, service.ErrInvalidLoadSize) {
			t.Errorf("load %d: expected ErrInvalidLoadSize, got: %v", load, err)
		}
	}
}

func TestBookingCreate_InactiveTrip_Fails(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	trip := env.addActiveTrip("trip-1", "carrier-1", 500, 1.0)
	trip.Status = domain.TripStatusCancelled

	_, err := env.bookingService.Create(context.Background(), shipper("shipper-1"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 100,
	})
	if !errors.Is(err, service.ErrTripNotActive) {
		t.Fatalf("expected ErrTripNotActive, got: %v", err)
	}
}

func TestBookingCreate_MissingTrip_Fails(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()

	_, err := env.bookingService.Create(context.Background(), shipper("shipper-1"), service.CreateBookingRequest{
		TripID:     "no-such-trip",
		LoadSizeKg: 100,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

// Capacity scenario: 1000kg trip, 600kg booked, 500kg rejected for lack of
// space, rejection of the first booking restores the full 1000kg and the
// 500kg booking then fits.
func TestBookingCapacity_ReserveRejectRestoreScenario(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	ctx := context.Background()

	bookingA, err := env.bookingService.Create(ctx, shipper("shipper-a"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 600,
	})
	if err != nil {
		t.Fatalf("booking A: expected no error, got: %v", err)
	}
	if got := env.trips.GetTrip("trip-1").AvailableCapacity; got != 400 {
		t.Fatalf("after booking A: expected capacity 400, got %d", got)
	}

	_, err = env.bookingService.Create(ctx, shipper("shipper-b"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 500,
	})
	if !errors.Is(err, service.ErrInsufficientCapacity) {
		t.Fatalf("booking B: expected ErrInsufficientCapacity, got: %v", err)
	}
	if got := env.trips.GetTrip("trip-1").AvailableCapacity; got != 400 {
		t.Fatalf("after failed booking B: expected capacity 400, got %d", got)
	}

	_, err = env.bookingService.Transition(ctx, carrier("carrier-1"), bookingA.ID, domain.BookingStatusRejected)
	if err != nil {
		t.Fatalf("reject booking A: expected no error, got: %v", err)
	}
	if got := env.trips.GetTrip("trip-1").AvailableCapacity; got != 1000 {
		t.Fatalf("after rejecting A: expected capacity restored to 1000, got %d", got)
	}

	_, err = env.bookingService.Create(ctx, shipper("shipper-b"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 500,
	})
	if err != nil {
		t.Fatalf("booking B retry: expected no error, got: %v", err)
	}
	if got := env.trips.GetTrip("trip-1").AvailableCapacity; got != 500 {
		t.Fatalf("after booking B retry: expected capacity 500, got %d", got)
	}
}

func TestBookingDelete_ReleasesExactlyHeldCapacity(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	ctx := context.Background()

	booking, err := env.bookingService.Create(ctx, shipper("shipper-1"), service.CreateBookingRequest{
		TripID:     "trip-1",
		LoadSizeKg: 300,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := env.bookingService.Delete(ctx, shipper("shipper-1"), booking.ID); err != nil {
		t.Fatalf("delete: expected no error, got: %v", err)
	}

	trip := env.trips.GetTrip("trip-1")
	if trip.AvailableCapacity != 1000 {
		t.Errorf("expected capacity restored to 1000, got %d", trip.AvailableCapacity)
	}
	if env.bookings.CountBookings() != 0 {
		t.Errorf("expected booking removed, %d remain", env.bookings.CountBookings())
	}
}

func TestBookingDelete_FulfilledBooking_NotCancellable(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.bookings.AddBooking(&domain.Booking{
		ID:         "booking-1",
		TripID:     "trip-1",
		ShipperID:  "shipper-1",
		LoadSizeKg: 200,
		Status:     domain.BookingStatusFulfilled,
	})

	err := env.bookingService.Delete(context.Background(), shipper("shipper-1"), "booking-1")
	if !errors.Is(err, service.ErrBookingNotCancellable) {
		t.Fatalf("expected ErrBookingNotCancellable, got: %v", err)
	}
	if env.bookings.CountBookings() != 1 {
		t.Error("expected booking to remain")
	}
}

func TestCapacityInvariant_ReleaseClampsAtTotal(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	trip := env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	trip.AvailableCapacity = 900

	if err := env.tripService.Release(context.Background(), env.trips, trip, 500); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if trip.AvailableCapacity != 1000 {
		t.Errorf("expected capacity clamped at 1000, got %d", trip.AvailableCapacity)
	}
}

package tests

import (
	"context"
	"errors"
	"testing"

	"loadlink/internal/domain"
	"loadlink/internal/service"
)

// ──────────────────────────────────────────────
// 2. BOOKING LIFECYCLE TRANSITIONS
// ──────────────────────────────────────────────

func (e *lifecycleEnv) addPendingBooking(id, tripID, shipperID string, load int) *domain.Booking {
	booking := &domain.Booking{
		ID:         id,
		TripID:     tripID,
		ShipperID:  shipperID,
		LoadSizeKg: load,
		TotalPrice: float64(load),
		Status:     domain.BookingStatusPending,
	}
	e.bookings.AddBooking(booking)
	return booking
}

func TestTransition_CarrierAccepts_SetsQRFlag(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)

	booking, err := env.bookingService.Transition(context.Background(), carrier("carrier-1"), "booking-1", domain.BookingStatusAccepted)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if booking.Status != domain.BookingStatusAccepted {
		t.Errorf("expected status accepted, got %s", booking.Status)
	}
	if !booking.QRGenerated {
		t.Error("expected QR flag set on acceptance")
	}
	if booking.QRGeneratedDate.IsZero() {
		t.Error("expected QR generation date set")
	}
}

func TestTransition_ShipperCannotAccept(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)

	_, err := env.bookingService.Transition(context.Background(), shipper("shipper-1"), "booking-1", domain.BookingStatusAccepted)
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got: %v", err)
	}

	if env.bookings.GetBooking("booking-1").Status != domain.BookingStatusPending {
		t.Error("expected booking left pending")
	}
}

func TestTransition_CarrierOfOtherTrip_CannotAccept(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)

	_, err := env.bookingService.Transition(context.Background(), carrier("carrier-2"), "booking-1", domain.BookingStatusAccepted)
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got: %v", err)
	}
}

func TestTransition_InvalidJumps_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		from   domain.BookingStatus
		target domain.BookingStatus
	}{
		{"pending to fulfilled", domain.BookingStatusPending, domain.BookingStatusFulfilled},
		{"pending to completed", domain.BookingStatusPending, domain.BookingStatusCompleted},
		{"pending to paid", domain.BookingStatusPending, domain.BookingStatusPaid},
		{"accepted to completed", domain.BookingStatusAccepted, domain.BookingStatusCompleted},
		{"accepted to paid", domain.BookingStatusAccepted, domain.BookingStatusPaid},
		{"rejected to accepted", domain.BookingStatusRejected, domain.BookingStatusAccepted},
		{"fulfilled to paid", domain.BookingStatusFulfilled, domain.BookingStatusPaid},
		{"completed to pending", domain.BookingStatusCompleted, domain.BookingStatusPending},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newLifecycleEnv()
			env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
			booking := env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)
			booking.Status = tc.from

			_, err := env.bookingService.Transition(context.Background(), carrier("carrier-1"), "booking-1", tc.target)
			if !errors.Is(err, service.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got: %v", err)
			}
		})
	}
}

func TestTransition_UnknownStatus_Rejected(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)

	_, err := env.bookingService.Transition(context.Background(), carrier("carrier-1"), "booking-1", domain.BookingStatus("shipped"))
	if !errors.Is(err, service.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestTransition_FulfillSetsDate_BothRolesAllowed(t *testing.T) {
	t.Parallel()

	for _, actor := range []domain.Principal{carrier("carrier-1"), shipper("shipper-1")} {
		actor := actor
		t.Run(string(actor.Role), func(t *testing.T) {
			t.Parallel()

			env := newLifecycleEnv()
			env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
			booking := env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)
			booking.Status = domain.BookingStatusAccepted

			updated, err := env.bookingService.Transition(context.Background(), actor, "booking-1", domain.BookingStatusFulfilled)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if updated.FulfilledDate.IsZero() {
				t.Error("expected fulfilled date set")
			}
		})
	}
}

func TestTransition_FulfilledToCompleted(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	booking := env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)
	booking.Status = domain.BookingStatusFulfilled

	updated, err := env.bookingService.Transition(context.Background(), shipper("shipper-1"), "booking-1", domain.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Status != domain.BookingStatusCompleted {
		t.Errorf("expected status completed, got %s", updated.Status)
	}
}

func TestBookingAccess_ShipperCannotReadOthersBooking(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)

	_, err := env.bookingService.Get(context.Background(), shipper("shipper-2"), "booking-1")
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got: %v", err)
	}
}

func TestBookingAccess_ShipperCannotDeleteOthersBooking(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)

	err := env.bookingService.Delete(context.Background(), shipper("shipper-2"), "booking-1")
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got: %v", err)
	}
	if env.bookings.CountBookings() != 1 {
		t.Error("expected booking to remain")
	}
}

func TestBookingNotes_ShipperEditsOwnOnly(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 200)

	booking, err := env.bookingService.UpdateNotes(context.Background(), shipper("shipper-1"), "booking-1", "fragile cargo")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if booking.Notes != "fragile cargo" {
		t.Errorf("expected notes updated, got %q", booking.Notes)
	}

	_, err = env.bookingService.UpdateNotes(context.Background(), shipper("shipper-2"), "booking-1", "hijack")
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got: %v", err)
	}
}

func TestBookingList_ShipperSeesOnlyOwn(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)
	env.addPendingBooking("booking-2", "trip-1", "shipper-2", 100)

	mine, err := env.bookingService.List(context.Background(), shipper("shipper-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(mine) != 1 || mine[0].ShipperID != "shipper-1" {
		t.Errorf("expected only shipper-1's booking, got %d bookings", len(mine))
	}

	all, err := env.bookingService.List(context.Background(), carrier("carrier-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 bookings for carrier, got %d", len(all))
	}
}

func TestBookingListByTrip_CarrierMustOwnTrip(t *testing.T) {
	t.Parallel()

	env := newLifecycleEnv()
	env.addActiveTrip("trip-1", "carrier-1", 1000, 1.0)
	env.addPendingBooking("booking-1", "trip-1", "shipper-1", 100)

	_, err := env.bookingService.ListByTrip(context.Background(), carrier("carrier-2"), "trip-1")
	if !errors.Is(err, service.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got: %v", err)
	}

	bookings, err := env.bookingService.ListByTrip(context.Background(), carrier("carrier-1"), "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("expected 1 booking, got %d", len(bookings))
	}
}

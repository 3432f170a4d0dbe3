package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// PaymentService performs booking settlement: creating exactly one payment
// per booking and flipping the booking to its terminal paid state.
type PaymentService struct {
	txRunner    repository.TxRunner
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(txRunner repository.TxRunner, paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{txRunner: txRunner, paymentRepo: paymentRepo}
}

// Settle creates the payment for a booking and marks the booking paid, both
// in one transaction. Funds flow from the booking's shipper to the trip's
// carrier. A second settlement attempt fails with ErrAlreadyPaid; the
// unique constraint on the payment's booking_id backstops the status check.
func (s *PaymentService) Settle(ctx context.Context, actor domain.Principal, bookingID string) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, r repository.TxRepos) error {
		booking, err := r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if booking.Status == domain.BookingStatusPaid {
			return ErrAlreadyPaid
		}

		trip, err := r.Trips.GetByID(ctx, booking.TripID)
		if err != nil {
			return err
		}

		if err := authorizeBookingActor(actor, booking, trip); err != nil {
			return err
		}

		now := time.Now()
		payment = &domain.Payment{
			ID:            uuid.New().String(),
			BookingID:     booking.ID,
			FromUserID:    booking.ShipperID,
			ToUserID:      trip.CarrierID,
			Amount:        booking.TotalPrice,
			Status:        domain.PaymentStatusCompleted,
			CreatedDate:   now,
			CompletedDate: now,
		}

		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}

		booking.Status = domain.BookingStatusPaid
		booking.PaidDate = now

		return r.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// ListForUser retrieves every payment where the user is payer or receiver.
// A user with no transactions gets an empty list, not an error.
func (s *PaymentService) ListForUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	payments, err := s.paymentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payments == nil {
		payments = make([]*domain.Payment, 0)
	}

	return payments, nil
}

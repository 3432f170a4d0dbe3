package postgres

import (
	"context"
	"database/sql"
	"errors"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

const paymentColumns = `id, booking_id, from_user_id, to_user_id, amount, status, created_date, completed_date`

// Create persists a new payment. The unique constraint on booking_id makes
// a second payment for the same booking fail with ErrDuplicate.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.FromUserID,
		payment.ToUserID,
		payment.Amount,
		payment.Status,
		payment.CreatedDate,
		nullTime(payment.CompletedDate),
	)

	return translateError(err)
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.q.QueryRowContext(ctx, query, id))
}

// GetByBookingID retrieves the payment for a booking.
// Returns nil if the booking has no payment.
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return payment, nil
}

// GetByUserID retrieves every payment where the user is payer or receiver.
func (r *PaymentRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE from_user_id = $1 OR to_user_id = $1
		ORDER BY created_date DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var payment domain.Payment
		var completedDate sql.NullTime
		if err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.FromUserID,
			&payment.ToUserID,
			&payment.Amount,
			&payment.Status,
			&payment.CreatedDate,
			&completedDate,
		); err != nil {
			return nil, err
		}
		if completedDate.Valid {
			payment.CompletedDate = completedDate.Time
		}
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

func scanPayment(row *sql.Row) (*domain.Payment, error) {
	var payment domain.Payment
	var completedDate sql.NullTime

	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.FromUserID,
		&payment.ToUserID,
		&payment.Amount,
		&payment.Status,
		&payment.CreatedDate,
		&completedDate,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if completedDate.Valid {
		payment.CompletedDate = completedDate.Time
	}

	return &payment, nil
}

// Ensure PaymentRepository implements repository.PaymentRepository.
var _ repository.PaymentRepository = (*PaymentRepository)(nil)

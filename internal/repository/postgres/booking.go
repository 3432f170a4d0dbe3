package postgres

import (
	"context"
	"database/sql"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `id, trip_id, shipper_id, load_size_kg, total_price, status, created_date,
		fulfilled_date, paid_date, qr_generated, qr_generated_date, notes`

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.TripID,
		booking.ShipperID,
		booking.LoadSizeKg,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedDate,
		nullTime(booking.FulfilledDate),
		nullTime(booking.PaidDate),
		booking.QRGenerated,
		nullTime(booking.QRGeneratedDate),
		booking.Notes,
	)

	return translateError(err)
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a booking by ID with a row-level lock.
// Must be called inside a transaction; the lock serializes concurrent
// settlement attempts against the same booking.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBooking(r.q.QueryRowContext(ctx, query, id))
}

// GetAll retrieves all bookings.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_date DESC`
	return r.queryMany(ctx, query)
}

// GetByShipperID retrieves all bookings created by a shipper.
func (r *BookingRepository) GetByShipperID(ctx context.Context, shipperID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE shipper_id = $1 ORDER BY created_date DESC`
	return r.queryMany(ctx, query, shipperID)
}

// GetByTripID retrieves all bookings on a trip, optionally restricted to
// one shipper.
func (r *BookingRepository) GetByTripID(ctx context.Context, tripID, shipperID string) ([]*domain.Booking, error) {
	if shipperID != "" {
		query := `SELECT ` + bookingColumns + ` FROM bookings WHERE trip_id = $1 AND shipper_id = $2 ORDER BY created_date DESC`
		return r.queryMany(ctx, query, tripID, shipperID)
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE trip_id = $1 ORDER BY created_date DESC`
	return r.queryMany(ctx, query, tripID)
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, fulfilled_date = $2, paid_date = $3, qr_generated = $4, qr_generated_date = $5, notes = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		booking.Status,
		nullTime(booking.FulfilledDate),
		nullTime(booking.PaidDate),
		booking.QRGenerated,
		nullTime(booking.QRGeneratedDate),
		booking.Notes,
		booking.ID,
	)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a booking.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *BookingRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBookingRows(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var fulfilledDate, paidDate, qrDate sql.NullTime
	var notes sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.TripID,
		&booking.ShipperID,
		&booking.LoadSizeKg,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedDate,
		&fulfilledDate,
		&paidDate,
		&booking.QRGenerated,
		&qrDate,
		&notes,
	)
	if err != nil {
		return nil, translateError(err)
	}

	applyBookingNulls(&booking, fulfilledDate, paidDate, qrDate, notes)
	return &booking, nil
}

func scanBookingRows(rows *sql.Rows) (*domain.Booking, error) {
	var booking domain.Booking
	var fulfilledDate, paidDate, qrDate sql.NullTime
	var notes sql.NullString

	err := rows.Scan(
		&booking.ID,
		&booking.TripID,
		&booking.ShipperID,
		&booking.LoadSizeKg,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedDate,
		&fulfilledDate,
		&paidDate,
		&booking.QRGenerated,
		&qrDate,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	applyBookingNulls(&booking, fulfilledDate, paidDate, qrDate, notes)
	return &booking, nil
}

func applyBookingNulls(b *domain.Booking, fulfilled, paid, qr sql.NullTime, notes sql.NullString) {
	if fulfilled.Valid {
		b.FulfilledDate = fulfilled.Time
	}
	if paid.Valid {
		b.PaidDate = paid.Time
	}
	if qr.Valid {
		b.QRGeneratedDate = qr.Time
	}
	if notes.Valid {
		b.Notes = notes.String
	}
}

// Ensure BookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*BookingRepository)(nil)

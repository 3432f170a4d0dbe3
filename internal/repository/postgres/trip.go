package postgres

import (
	"context"
	"database/sql"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, carrier_id, vehicle_id, origin, destination, departure_date, arrival_date,
		price_per_kg, total_capacity, available_capacity, status, description`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.CarrierID,
		trip.VehicleID,
		trip.Origin,
		trip.Destination,
		trip.DepartureDate,
		trip.ArrivalDate,
		trip.PricePerKg,
		trip.TotalCapacity,
		trip.AvailableCapacity,
		trip.Status,
		trip.Description,
	)

	return translateError(err)
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return scanTrip(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a trip by ID with a row-level lock.
// Must be called inside a transaction; the lock serializes concurrent
// capacity reservations against the same trip.
func (r *TripRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 FOR UPDATE`
	return scanTrip(r.q.QueryRowContext(ctx, query, id))
}

// GetByStatus retrieves all trips with the given status.
func (r *TripRepository) GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE status = $1 ORDER BY departure_date`
	return r.queryMany(ctx, query, status)
}

// GetByCarrierID retrieves all trips owned by a carrier.
func (r *TripRepository) GetByCarrierID(ctx context.Context, carrierID string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE carrier_id = $1 ORDER BY departure_date`
	return r.queryMany(ctx, query, carrierID)
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET vehicle_id = $1, origin = $2, destination = $3, departure_date = $4, arrival_date = $5,
			price_per_kg = $6, total_capacity = $7, available_capacity = $8, status = $9, description = $10
		WHERE id = $11
	`

	result, err := r.q.ExecContext(ctx, query,
		trip.VehicleID,
		trip.Origin,
		trip.Destination,
		trip.DepartureDate,
		trip.ArrivalDate,
		trip.PricePerKg,
		trip.TotalCapacity,
		trip.AvailableCapacity,
		trip.Status,
		trip.Description,
		trip.ID,
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

// Delete removes a trip.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
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

func (r *TripRepository) queryMany(ctx context.Context, query string, arg any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		var description sql.NullString
		if err := rows.Scan(
			&trip.ID,
			&trip.CarrierID,
			&trip.VehicleID,
			&trip.Origin,
			&trip.Destination,
			&trip.DepartureDate,
			&trip.ArrivalDate,
			&trip.PricePerKg,
			&trip.TotalCapacity,
			&trip.AvailableCapacity,
			&trip.Status,
			&description,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			trip.Description = description.String
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}

func scanTrip(row *sql.Row) (*domain.Trip, error) {
	var trip domain.Trip
	var description sql.NullString

	err := row.Scan(
		&trip.ID,
		&trip.CarrierID,
		&trip.VehicleID,
		&trip.Origin,
		&trip.Destination,
		&trip.DepartureDate,
		&trip.ArrivalDate,
		&trip.PricePerKg,
		&trip.TotalCapacity,
		&trip.AvailableCapacity,
		&trip.Status,
		&description,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if description.Valid {
		trip.Description = description.String
	}

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)

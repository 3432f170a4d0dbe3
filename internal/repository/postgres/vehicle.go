package postgres

import (
	"context"
	"database/sql"

	"loadlink/internal/domain"
	"loadlink/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, carrier_id, type, capacity_kg, license_plate, rc_number, is_active`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.CarrierID,
		vehicle.Type,
		vehicle.CapacityKg,
		vehicle.LicensePlate,
		vehicle.RCNumber,
		vehicle.IsActive,
	)

	return translateError(err)
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	var vehicle domain.Vehicle
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.CarrierID,
		&vehicle.Type,
		&vehicle.CapacityKg,
		&vehicle.LicensePlate,
		&vehicle.RCNumber,
		&vehicle.IsActive,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &vehicle, nil
}

// GetByCarrierID retrieves all vehicles owned by a carrier.
func (r *VehicleRepository) GetByCarrierID(ctx context.Context, carrierID string) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE carrier_id = $1 ORDER BY license_plate`

	rows, err := r.q.QueryContext(ctx, query, carrierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.CarrierID,
			&vehicle.Type,
			&vehicle.CapacityKg,
			&vehicle.LicensePlate,
			&vehicle.RCNumber,
			&vehicle.IsActive,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, rows.Err()
}

// Update updates an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET type = $1, capacity_kg = $2, license_plate = $3, rc_number = $4, is_active = $5
		WHERE id = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.Type,
		vehicle.CapacityKg,
		vehicle.LicensePlate,
		vehicle.RCNumber,
		vehicle.IsActive,
		vehicle.ID,
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

// Delete removes a vehicle.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
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

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)

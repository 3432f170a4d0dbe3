package repository

import "context"

// TxRepos bundles transaction-scoped repositories. Every repository in the
// bundle operates on the same underlying transaction.
type TxRepos struct {
	Users    UserRepository
	Vehicles VehicleRepository
	Trips    TripRepository
	Bookings BookingRepository
	Payments PaymentRepository
	Reviews  ReviewRepository
}

// TxRunner executes a function inside a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise, so a failed
// lifecycle operation leaves no partial effect.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r TxRepos) error) error
}

package postgres

import (
	"context"
	"database/sql"

	"loadlink/internal/repository"
)

// TxRunner is a PostgreSQL implementation of repository.TxRunner.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a new TxRunner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// WithinTx runs fn inside one transaction, handing it repositories scoped
// to that transaction. It commits when fn returns nil and rolls back on any
// error or panic.
func (t *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, r repository.TxRepos) error) (err error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	repos := repository.TxRepos{
		Users:    NewUserRepositoryWithTx(tx),
		Vehicles: NewVehicleRepositoryWithTx(tx),
		Trips:    NewTripRepositoryWithTx(tx),
		Bookings: NewBookingRepositoryWithTx(tx),
		Payments: NewPaymentRepositoryWithTx(tx),
		Reviews:  NewReviewRepositoryWithTx(tx),
	}

	if err = fn(ctx, repos); err != nil {
		return err
	}

	return tx.Commit()
}

// Ensure TxRunner implements repository.TxRunner.
var _ repository.TxRunner = (*TxRunner)(nil)

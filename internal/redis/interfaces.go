package redis

import (
	"context"
	"time"

	"loadlink/internal/domain"
)

// LockStoreInterface defines the interface for distributed trip locking.
type LockStoreInterface interface {
	AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error)
	ReleaseTripLock(ctx context.Context, tripID string) error
}

// CacheStoreInterface defines the interface for the trip listing cache.
type CacheStoreInterface interface {
	GetActiveTrips(ctx context.Context) ([]*domain.Trip, error)
	SetActiveTrips(ctx context.Context, trips []*domain.Trip) error
	InvalidateActiveTrips(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)

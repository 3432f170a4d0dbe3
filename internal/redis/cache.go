package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"loadlink/internal/domain"
)

// CacheStore caches the public active-trip listing in Redis. It is only
// used on the read path; lifecycle transactions always go to the store.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

const (
	activeTripsKey = "cache:trips:active"

	// ActiveTripsTTL bounds how stale the public listing can get even
	// without explicit invalidation.
	ActiveTripsTTL = 30 * time.Second
)

// GetActiveTrips retrieves the cached active-trip listing.
// Returns nil on a cache miss.
func (s *CacheStore) GetActiveTrips(ctx context.Context) ([]*domain.Trip, error) {
	data, err := s.client.Get(ctx, activeTripsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var trips []*domain.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// SetActiveTrips stores the active-trip listing.
func (s *CacheStore) SetActiveTrips(ctx context.Context, trips []*domain.Trip) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, activeTripsKey, data, ActiveTripsTTL).Err()
}

// InvalidateActiveTrips drops the cached listing after any trip or capacity
// mutation.
func (s *CacheStore) InvalidateActiveTrips(ctx context.Context) error {
	return s.client.Del(ctx, activeTripsKey).Err()
}

package memory

import (
	"context"
	"sort"
	"sync"

	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/storage"
)

// PriceHistoryStore is an in-memory implementation of
// storage.PriceHistoryStore for tests and local development.
type PriceHistoryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PriceObservation // keyed by observation id
}

// NewPriceHistoryStore creates a new in-memory price history store.
func NewPriceHistoryStore() *PriceHistoryStore {
	return &PriceHistoryStore{
		data: make(map[string]*domain.PriceObservation),
	}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *PriceHistoryStore) EnsureSchema(_ context.Context) error {
	return nil
}

// LatestPrice returns the msrp of the most recent observation for the
// pair. Returns ErrNotFound if the pair has no history.
func (s *PriceHistoryStore) LatestPrice(_ context.Context, brandName, modelName string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.PriceObservation
	for _, o := range s.data {
		if o.BrandName != brandName || o.ModelName != modelName {
			continue
		}
		if latest == nil || o.CreateTimestamp.After(latest.CreateTimestamp) {
			latest = o
		}
	}

	if latest == nil {
		return 0, storage.ErrNotFound
	}
	return latest.MSRP, nil
}

// Insert adds a new observation. Returns ErrDuplicateKey if the id exists.
func (s *PriceHistoryStore) Insert(_ context.Context, obs *domain.PriceObservation) error {
	if obs == nil || obs.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[obs.ID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	obsCopy := *obs
	s.data[obs.ID] = &obsCopy
	return nil
}

// History retrieves all observations for a pair, ordered by
// create_timestamp ASC.
func (s *PriceHistoryStore) History(_ context.Context, brandName, modelName string) ([]*domain.PriceObservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.PriceObservation
	for _, o := range s.data {
		if o.BrandName == brandName && o.ModelName == modelName {
			obsCopy := *o
			result = append(result, &obsCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreateTimestamp.Equal(result[j].CreateTimestamp) {
			return result[i].CreateTimestamp.Before(result[j].CreateTimestamp)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.PriceHistoryStore = (*PriceHistoryStore)(nil)

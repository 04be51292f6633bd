package storage

import (
	"context"

	"ev-price-tracker/internal/domain"
)

// PriceHistoryStore provides access to the append-only price history table.
type PriceHistoryStore interface {
	// EnsureSchema idempotently creates the history table if absent.
	EnsureSchema(ctx context.Context) error

	// LatestPrice returns the msrp of the most recent observation for the
	// normalized (brand, model) pair. Returns ErrNotFound if the pair has
	// no history.
	LatestPrice(ctx context.Context, brandName, modelName string) (float64, error)

	// Insert adds a new observation. Returns ErrDuplicateKey if an
	// observation with the same id already exists.
	Insert(ctx context.Context, obs *domain.PriceObservation) error

	// History retrieves all observations for a pair, ordered by
	// create_timestamp ASC.
	History(ctx context.Context, brandName, modelName string) ([]*domain.PriceObservation, error)
}

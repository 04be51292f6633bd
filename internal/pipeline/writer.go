package pipeline

import (
	"context"
	"errors"
	"fmt"

	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/idhash"
	"ev-price-tracker/internal/storage"
)

// Writer persists a normalized record if and only if it represents a
// price change from the latest known observation for the (brand, model)
// pair. The store-level primary key on the deterministic observation id
// is the final arbiter under concurrent writers; the latest-price
// pre-check only avoids pointless inserts.
type Writer struct {
	store storage.PriceHistoryStore
}

// NewWriter creates a change-aware writer on top of a price history store.
func NewWriter(store storage.PriceHistoryStore) *Writer {
	return &Writer{store: store}
}

// Write runs the per-record state machine: ensure schema, compare
// against the latest stored price, insert on change.
//
// Returns StatusInserted or StatusUnchanged with the observation id on
// success. A *SchemaError means the run must abort; a *PersistenceError
// is fatal for this record only.
func (w *Writer) Write(ctx context.Context, rec *domain.NormalizedRecord) (domain.IngestStatus, string, error) {
	if err := w.store.EnsureSchema(ctx); err != nil {
		return "", "", &SchemaError{Err: err}
	}

	id := idhash.ObservationID(rec.BrandName, rec.ModelName, rec.ObservedAt)

	lastPrice, err := w.store.LatestPrice(ctx, rec.BrandName, rec.ModelName)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// Cold start: first observation for the pair always inserts.
	case err != nil:
		return "", id, &PersistenceError{Err: fmt.Errorf("query latest price: %w", err)}
	case lastPrice == rec.MSRP:
		// Exact float64 comparison: both sides were produced by the same
		// normalizer, so equal prices are bit-for-bit equal.
		return domain.StatusUnchanged, id, nil
	}

	obs := &domain.PriceObservation{
		ID:              id,
		BrandName:       rec.BrandName,
		ModelName:       rec.ModelName,
		CarType:         rec.CarType,
		ImageSrc:        rec.ImageSrc,
		MSRP:            rec.MSRP,
		CreateTimestamp: rec.ObservedAt,
	}

	if err := w.store.Insert(ctx, obs); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Same (pair, day) already recorded: an intraday re-run or a
			// concurrent writer got there first. Not an error.
			return domain.StatusUnchanged, id, nil
		}
		return "", id, &PersistenceError{Err: err}
	}

	return domain.StatusInserted, id, nil
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/storage"
)

func testObservation(id string, msrp float64, at time.Time) *domain.PriceObservation {
	return &domain.PriceObservation{
		ID:              id,
		BrandName:       "rivian",
		ModelName:       "r1s",
		CarType:         "suv",
		ImageSrc:        "http://x/img.png",
		MSRP:            msrp,
		CreateTimestamp: at,
	}
}

func TestPriceHistoryStore_EnsureSchemaIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	// Running schema creation again must be a no-op, not an error.
	require.NoError(t, store.EnsureSchema(context.Background()))
}

func TestPriceHistoryStore_InsertAndHistory(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	obs := testObservation("obs-001", 78000.0, at)
	require.NoError(t, store.Insert(ctx, obs))

	history, err := store.History(ctx, "rivian", "r1s")
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0]
	assert.Equal(t, obs.ID, got.ID)
	assert.Equal(t, obs.BrandName, got.BrandName)
	assert.Equal(t, obs.ModelName, got.ModelName)
	assert.Equal(t, obs.CarType, got.CarType)
	assert.Equal(t, obs.ImageSrc, got.ImageSrc)
	assert.Equal(t, obs.MSRP, got.MSRP)
	assert.True(t, obs.CreateTimestamp.Equal(got.CreateTimestamp))
}

func TestPriceHistoryStore_InsertDuplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	obs := testObservation("obs-dup", 78000.0, at)
	require.NoError(t, store.Insert(ctx, obs))

	// Second insert with the same id, even at a different price, must
	// surface ErrDuplicateKey so the writer can treat it as unchanged.
	again := testObservation("obs-dup", 79000.0, at.Add(6*time.Hour))
	err := store.Insert(ctx, again)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestPriceHistoryStore_LatestPrice(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Empty history
	_, err := store.LatestPrice(ctx, "rivian", "r1s")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Two observations; the most recent one wins.
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, testObservation("obs-d1", 78000.0, day1)))
	require.NoError(t, store.Insert(ctx, testObservation("obs-d2", 76500.0, day2)))

	price, err := store.LatestPrice(ctx, "rivian", "r1s")
	require.NoError(t, err)
	assert.Equal(t, 76500.0, price)

	// Another pair's rows must not leak into the lookup.
	_, err = store.LatestPrice(ctx, "rivian", "r1t")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNewPriceHistoryStore_RejectsUnsafeTableName(t *testing.T) {
	_, err := NewPriceHistoryStore(nil, `ev_prices"; DROP TABLE ev_prices; --`)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	_, err = NewPriceHistoryStore(nil, "")
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/storage"
)

func TestPriceHistoryStore_InsertAndLatestPrice(t *testing.T) {
	store := NewPriceHistoryStore()
	ctx := context.Background()

	_, err := store.LatestPrice(ctx, "tesla", "model y")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Insert(ctx, &domain.PriceObservation{
		ID:              "id-1",
		BrandName:       "tesla",
		ModelName:       "model y",
		ImageSrc:        "http://x/y.png",
		MSRP:            42000.0,
		CreateTimestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.Insert(ctx, &domain.PriceObservation{
		ID:              "id-2",
		BrandName:       "tesla",
		ModelName:       "model y",
		ImageSrc:        "http://x/y.png",
		MSRP:            43000.0,
		CreateTimestamp: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}))

	price, err := store.LatestPrice(ctx, "tesla", "model y")
	require.NoError(t, err)
	assert.Equal(t, 43000.0, price)
}

func TestPriceHistoryStore_InsertDuplicate(t *testing.T) {
	store := NewPriceHistoryStore()
	ctx := context.Background()

	obs := &domain.PriceObservation{
		ID:              "id-dup",
		BrandName:       "rivian",
		ModelName:       "r1s",
		ImageSrc:        "http://x/img.png",
		MSRP:            78000.0,
		CreateTimestamp: time.Now().UTC(),
	}
	require.NoError(t, store.Insert(ctx, obs))
	assert.ErrorIs(t, store.Insert(ctx, obs), storage.ErrDuplicateKey)
}

func TestPriceHistoryStore_InsertInvalid(t *testing.T) {
	store := NewPriceHistoryStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &domain.PriceObservation{}), storage.ErrInvalidInput)
}

func TestPriceHistoryStore_HistoryOrdering(t *testing.T) {
	store := NewPriceHistoryStore()
	ctx := context.Background()

	days := []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}
	ids := []string{"id-c", "id-a", "id-b"}
	for i, day := range days {
		require.NoError(t, store.Insert(ctx, &domain.PriceObservation{
			ID:              ids[i],
			BrandName:       "lucid",
			ModelName:       "air",
			ImageSrc:        "http://x/air.png",
			MSRP:            69900.0 + float64(i),
			CreateTimestamp: day,
		}))
	}

	history, err := store.History(ctx, "lucid", "air")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "id-a", history[0].ID)
	assert.Equal(t, "id-b", history[1].ID)
	assert.Equal(t, "id-c", history[2].ID)

	other, err := store.History(ctx, "lucid", "gravity")
	require.NoError(t, err)
	assert.Empty(t, other)
}

package postgres

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"

	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/storage"
)

// tableNamePattern restricts configured table names to plain SQL
// identifiers. Identifiers cannot be bound parameters, so this is the
// gate before the name is spliced into query text; all values are bound.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PriceHistoryStore implements storage.PriceHistoryStore using PostgreSQL.
// The table name is configurable so staging and production histories can
// share a database.
type PriceHistoryStore struct {
	pool  *Pool
	table string
}

// NewPriceHistoryStore creates a new PriceHistoryStore writing to the
// given table. Returns an error if the table name is not a plain SQL
// identifier.
func NewPriceHistoryStore(pool *Pool, table string) (*PriceHistoryStore, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: invalid table name %q", storage.ErrInvalidInput, table)
	}
	return &PriceHistoryStore{pool: pool, table: table}, nil
}

// Compile-time interface check.
var _ storage.PriceHistoryStore = (*PriceHistoryStore)(nil)

// EnsureSchema idempotently creates the history table if absent.
func (s *PriceHistoryStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id               VARCHAR(32) PRIMARY KEY,
			brand_name       TEXT NOT NULL,
			model_name       TEXT NOT NULL,
			car_type         TEXT NOT NULL DEFAULT '',
			image_src        TEXT NOT NULL,
			msrp             DOUBLE PRECISION NOT NULL,
			create_timestamp TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_pair ON %s (brand_name, model_name, create_timestamp);
	`, s.table, s.table, s.table)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure schema for %s: %w", s.table, err)
	}
	return nil
}

// LatestPrice returns the msrp of the most recent observation for the
// pair. Returns ErrNotFound if the pair has no history.
func (s *PriceHistoryStore) LatestPrice(ctx context.Context, brandName, modelName string) (float64, error) {
	query := fmt.Sprintf(`
		SELECT msrp
		FROM %s
		WHERE brand_name = $1 AND model_name = $2
		ORDER BY create_timestamp DESC
		LIMIT 1
	`, s.table)

	var msrp float64
	err := s.pool.QueryRow(ctx, query, brandName, modelName).Scan(&msrp)
	if err != nil {
		if isNotFoundError(err) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("latest price: %w", err)
	}
	return msrp, nil
}

// Insert adds a new observation. Returns ErrDuplicateKey if the id exists.
func (s *PriceHistoryStore) Insert(ctx context.Context, obs *domain.PriceObservation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, brand_name, model_name, car_type, image_src, msrp, create_timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, s.table)

	_, err := s.pool.Exec(ctx, query,
		obs.ID,
		obs.BrandName,
		obs.ModelName,
		obs.CarType,
		obs.ImageSrc,
		obs.MSRP,
		obs.CreateTimestamp,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// History retrieves all observations for a pair, ordered by
// create_timestamp ASC.
func (s *PriceHistoryStore) History(ctx context.Context, brandName, modelName string) ([]*domain.PriceObservation, error) {
	query := fmt.Sprintf(`
		SELECT id, brand_name, model_name, car_type, image_src, msrp, create_timestamp
		FROM %s
		WHERE brand_name = $1 AND model_name = $2
		ORDER BY create_timestamp ASC, id ASC
	`, s.table)

	rows, err := s.pool.Query(ctx, query, brandName, modelName)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// scanObservations scans multiple rows into a slice of PriceObservation.
func scanObservations(rows pgx.Rows) ([]*domain.PriceObservation, error) {
	var observations []*domain.PriceObservation

	for rows.Next() {
		var o domain.PriceObservation

		err := rows.Scan(
			&o.ID,
			&o.BrandName,
			&o.ModelName,
			&o.CarType,
			&o.ImageSrc,
			&o.MSRP,
			&o.CreateTimestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan observation row: %w", err)
		}

		observations = append(observations, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observation rows: %w", err)
	}

	return observations, nil
}

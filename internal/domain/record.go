package domain

import "time"

// CandidateRecord is a single brand/model price observation as produced
// by a page scraper, prior to validation. MSRP is kept as the raw scraped
// string ("$78,000", "78000") until the normalizer coerces it.
type CandidateRecord struct {
	BrandName  string
	ModelName  string
	CarType    string // optional
	ImageSrc   string
	MSRP       string
	ObservedAt time.Time // UTC expected; zero means "now"
}

// NormalizedRecord is a candidate record after type coercion and
// case-folding: names lower-cased, msrp parsed to a finite non-negative
// float, observed-at timezone-aware UTC. This is the canonical form used
// for identity and history lookups.
type NormalizedRecord struct {
	BrandName  string
	ModelName  string
	CarType    string
	ImageSrc   string
	MSRP       float64
	ObservedAt time.Time
}

// PriceObservation represents one persisted price point.
// Corresponds to a row in the price history table. Rows are immutable;
// the table is append-only.
type PriceObservation struct {
	ID              string  // PRIMARY KEY, deterministic hash of brand_model_date
	BrandName       string  // lower-cased
	ModelName       string  // lower-cased
	CarType         string  // lower-cased, may be empty
	ImageSrc        string
	MSRP            float64 // finite, non-negative
	CreateTimestamp time.Time
}

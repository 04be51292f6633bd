package pipeline

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"ev-price-tracker/internal/domain"
)

// Normalize coerces a validated candidate record into its canonical
// form: brand/model/car-type lower-cased, msrp parsed to a float,
// observed-at in UTC. The only way it can fail is an msrp that does not
// parse as a finite non-negative number, which yields a
// *NormalizationError.
func Normalize(rec *domain.CandidateRecord) (*domain.NormalizedRecord, error) {
	msrp, err := parsePrice(rec.MSRP)
	if err != nil {
		return nil, &NormalizationError{Field: "msrp", Value: rec.MSRP, Err: err}
	}

	observedAt := rec.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now()
	}

	return &domain.NormalizedRecord{
		BrandName:  strings.ToLower(strings.TrimSpace(rec.BrandName)),
		ModelName:  strings.ToLower(strings.TrimSpace(rec.ModelName)),
		CarType:    strings.ToLower(strings.TrimSpace(rec.CarType)),
		ImageSrc:   strings.TrimSpace(rec.ImageSrc),
		MSRP:       msrp,
		ObservedAt: observedAt.UTC(),
	}, nil
}

// parsePrice parses a scraped price string. Currency decoration is
// tolerated ("$78,000" -> 78000); anything that is not a finite
// non-negative number is an error.
func parsePrice(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.New("not a finite number")
	}
	if value < 0 {
		return 0, errors.New("negative price")
	}
	return value, nil
}

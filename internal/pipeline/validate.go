package pipeline

import (
	"strings"

	"ev-price-tracker/internal/domain"
)

// Required candidate fields. Brand and model gaps produce useless rows
// either way, but the original feed only ever lost images and prices, so
// those are the validated ones.
var requiredFields = []struct {
	name  string
	value func(*domain.CandidateRecord) string
}{
	{"image_src", func(r *domain.CandidateRecord) string { return r.ImageSrc }},
	{"msrp", func(r *domain.CandidateRecord) string { return r.MSRP }},
}

// Validate rejects candidate records with required fields missing.
// Returns a *ValidationError enumerating every missing field name, or
// nil if the record may proceed to normalization.
func Validate(rec *domain.CandidateRecord) error {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(rec)) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}
	return nil
}

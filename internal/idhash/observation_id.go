package idhash

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// ObservationID computes the deterministic id for a price observation.
// Formula: MD5(brand_model_YYYY-MM-DD) where brand and model are the
// normalized (lower-cased) names and the date is the UTC calendar date
// of the observation. Returns hex-encoded hash (32 characters).
//
// The id deliberately excludes price, image and car type: one calendar
// day per (brand, model) is the system's granularity for an observation,
// so same-day re-runs collide on the primary key and are suppressed by
// the store.
func ObservationID(brandName, modelName string, observedAt time.Time) string {
	data := fmt.Sprintf("%s_%s_%s",
		brandName,
		modelName,
		observedAt.UTC().Format("2006-01-02"),
	)

	hash := md5.Sum([]byte(data))
	return hex.EncodeToString(hash[:])
}

package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-price-tracker/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		rec         domain.CandidateRecord
		wantMissing []string
	}{
		{
			name: "complete record",
			rec: domain.CandidateRecord{
				BrandName:  "Rivian",
				ModelName:  "R1S",
				CarType:    "SUV",
				ImageSrc:   "http://x/img.png",
				MSRP:       "78,000",
				ObservedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "missing image",
			rec: domain.CandidateRecord{
				BrandName: "Rivian",
				ModelName: "R1S",
				MSRP:      "78,000",
			},
			wantMissing: []string{"image_src"},
		},
		{
			name: "missing msrp",
			rec: domain.CandidateRecord{
				BrandName: "Rivian",
				ModelName: "R1S",
				ImageSrc:  "http://x/img.png",
			},
			wantMissing: []string{"msrp"},
		},
		{
			name: "whitespace-only counts as missing",
			rec: domain.CandidateRecord{
				BrandName: "Rivian",
				ModelName: "R1S",
				ImageSrc:  "   ",
				MSRP:      "\t",
			},
			wantMissing: []string{"image_src", "msrp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.rec)

			if len(tt.wantMissing) == 0 {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantMissing, vErr.MissingFields)
			for _, field := range tt.wantMissing {
				assert.Contains(t, err.Error(), field)
			}
		})
	}
}

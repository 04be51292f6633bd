package domain

// IngestStatus is the per-record outcome reported to the batch runner.
type IngestStatus string

// Ingest outcomes
const (
	// StatusInserted means a new price row was written.
	StatusInserted IngestStatus = "inserted"
	// StatusUnchanged means the latest known price matched (or another
	// writer already stored today's observation); nothing was written.
	StatusUnchanged IngestStatus = "unchanged"
	// StatusRejected means validation or normalization dropped the record.
	StatusRejected IngestStatus = "rejected"
	// StatusFailed means the store rejected the write for a reason other
	// than a duplicate id.
	StatusFailed IngestStatus = "failed"
)

// IngestResult describes what happened to one candidate record.
type IngestResult struct {
	Status        IngestStatus
	ObservationID string // set once identity was assigned
	BrandName     string
	ModelName     string
	Reason        string // populated for rejected/failed
}

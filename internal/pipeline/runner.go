package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/observability"
	"ev-price-tracker/internal/storage"
)

// Runner drives candidate records through validation, normalization,
// identity assignment and the change-aware writer. Records are processed
// independently: a rejected or failed record never stops the batch, only
// a schema error does.
type Runner struct {
	writer  *Writer
	logger  *log.Logger
	metrics *observability.Metrics
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Store   storage.PriceHistoryStore
	Logger  *log.Logger
	Metrics *observability.Metrics // optional
}

// NewRunner creates a new ingestion runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		writer:  NewWriter(opts.Store),
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// Ingest processes a single candidate record. The returned result is
// always populated; the error is non-nil only for a *SchemaError, which
// the caller must treat as fatal for the whole run.
func (r *Runner) Ingest(ctx context.Context, rec *domain.CandidateRecord) (domain.IngestResult, error) {
	start := time.Now()
	result, err := r.ingest(ctx, rec)
	r.observe(result, time.Since(start))

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return result, schemaErr
	}
	return result, nil
}

func (r *Runner) ingest(ctx context.Context, rec *domain.CandidateRecord) (domain.IngestResult, error) {
	result := domain.IngestResult{
		BrandName: rec.BrandName,
		ModelName: rec.ModelName,
	}

	if err := Validate(rec); err != nil {
		result.Status = domain.StatusRejected
		result.Reason = err.Error()
		return result, err
	}

	normalized, err := Normalize(rec)
	if err != nil {
		result.Status = domain.StatusRejected
		result.Reason = err.Error()
		return result, err
	}
	result.BrandName = normalized.BrandName
	result.ModelName = normalized.ModelName

	status, id, err := r.writer.Write(ctx, normalized)
	result.ObservationID = id
	if err != nil {
		result.Status = domain.StatusFailed
		result.Reason = err.Error()
		return result, err
	}

	result.Status = status
	return result, nil
}

// IngestBatch processes records independently and returns one result per
// record, in input order. It stops early only on a schema error, which
// is returned together with the results gathered so far.
func (r *Runner) IngestBatch(ctx context.Context, recs []*domain.CandidateRecord) ([]domain.IngestResult, error) {
	results := make([]domain.IngestResult, 0, len(recs))

	for _, rec := range recs {
		result, err := r.Ingest(ctx, rec)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// observe logs the outcome and updates metrics.
func (r *Runner) observe(result domain.IngestResult, elapsed time.Duration) {
	switch result.Status {
	case domain.StatusInserted:
		r.logger.Printf("inserted %s/%s id=%s", result.BrandName, result.ModelName, result.ObservationID)
	case domain.StatusUnchanged:
		r.logger.Printf("unchanged %s/%s id=%s", result.BrandName, result.ModelName, result.ObservationID)
	case domain.StatusRejected:
		r.logger.Printf("rejected %s/%s: %s", result.BrandName, result.ModelName, result.Reason)
	case domain.StatusFailed:
		r.logger.Printf("FAILED %s/%s: %s", result.BrandName, result.ModelName, result.Reason)
	}

	if r.metrics != nil {
		r.metrics.RecordsProcessed.Inc()
		r.metrics.IngestResults.WithLabelValues(string(result.Status)).Inc()
		r.metrics.IngestDuration.Observe(elapsed.Seconds())
	}
}

// Command backfill inserts historical price points for one (brand, model)
// pair from a CSV-ish file of "YYYY-MM-DD,price" lines. Rows flow through
// the same pipeline as live scrapes, so identity, normalization and
// change detection behave exactly as they do day to day.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"ev-price-tracker/internal/config"
	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/pipeline"
	pgstore "ev-price-tracker/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	dsn := flag.String("dsn", "", "PostgreSQL connection string (overrides env)")
	table := flag.String("table", cfg.PriceTable, "Price history table name")
	brand := flag.String("brand", "", "Brand name (required)")
	model := flag.String("model", "", "Model name (required)")
	carType := flag.String("car-type", "", "Car type")
	imageSrc := flag.String("image-src", "", "Image URL recorded on every row (required)")
	pricesPath := flag.String("prices", "", "Path to file of YYYY-MM-DD,price lines (required)")

	flag.Parse()

	logger := log.New(os.Stdout, "[backfill] ", log.LstdFlags)

	if *brand == "" || *model == "" || *imageSrc == "" || *pricesPath == "" {
		flag.Usage()
		logger.Fatal("--brand, --model, --image-src and --prices are required")
	}

	records, err := readPriceFile(*pricesPath, *brand, *model, *carType, *imageSrc)
	if err != nil {
		logger.Fatalf("Read prices: %v", err)
	}
	if len(records) == 0 {
		logger.Fatal("No price lines found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *dsn == "" {
		*dsn = cfg.DSN()
	}
	pool, err := pgstore.NewPool(ctx, *dsn)
	if err != nil {
		logger.Fatalf("Connect to postgres: %v", err)
	}
	defer pool.Close()

	store, err := pgstore.NewPriceHistoryStore(pool, *table)
	if err != nil {
		logger.Fatalf("Create store: %v", err)
	}

	runner := pipeline.NewRunner(pipeline.RunnerOptions{
		Store:  store,
		Logger: logger,
	})

	results, err := runner.IngestBatch(ctx, records)
	if err != nil {
		logger.Fatalf("Run aborted: %v", err)
	}

	counts := map[domain.IngestStatus]int{}
	for _, result := range results {
		counts[result.Status]++
	}
	logger.Printf("Done: %d inserted, %d unchanged, %d rejected, %d failed",
		counts[domain.StatusInserted], counts[domain.StatusUnchanged],
		counts[domain.StatusRejected], counts[domain.StatusFailed])

	if counts[domain.StatusFailed] > 0 {
		os.Exit(1)
	}
}

// readPriceFile parses "YYYY-MM-DD,price" lines into candidate records
// observed at midnight UTC of each date. Blank lines and #-comments are
// skipped.
func readPriceFile(path, brand, model, carType, imageSrc string) ([]*domain.CandidateRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*domain.CandidateRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dateStr, price, ok := strings.Cut(line, ",")
		if !ok {
			log.Printf("Skipping malformed line: %q", line)
			continue
		}

		observedAt, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
		if err != nil {
			log.Printf("Skipping line with bad date: %q", line)
			continue
		}

		records = append(records, &domain.CandidateRecord{
			BrandName:  brand,
			ModelName:  model,
			CarType:    carType,
			ImageSrc:   imageSrc,
			MSRP:       strings.TrimSpace(price),
			ObservedAt: observedAt.UTC(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

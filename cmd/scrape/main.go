package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"ev-price-tracker/internal/config"
	"ev-price-tracker/internal/domain"
	"ev-price-tracker/internal/observability"
	"ev-price-tracker/internal/pipeline"
	"ev-price-tracker/internal/scrape"
	"ev-price-tracker/internal/storage"
	"ev-price-tracker/internal/storage/memory"
	pgstore "ev-price-tracker/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	dsn := flag.String("dsn", "", "PostgreSQL connection string (overrides env)")
	table := flag.String("table", cfg.PriceTable, "Price history table name")
	brands := flag.String("brands", "tesla,rivian,lucid", "Comma-separated brands to scrape")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Prometheus metrics HTTP address (empty to disable)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall run deadline")

	flag.Parse()

	logger := log.New(os.Stdout, "[scrape] ", log.LstdFlags)

	metrics := observability.NewMetrics("")
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	scrapers := resolveScrapers(*brands, cfg, logger)
	if len(scrapers) == 0 {
		logger.Fatal("No brands selected. Use --brands")
	}

	var store storage.PriceHistoryStore
	if *useMemory {
		store = memory.NewPriceHistoryStore()
		logger.Println("Using in-memory storage")
	} else {
		if *dsn == "" {
			*dsn = cfg.DSN()
		}
		pool, err := pgstore.NewPool(ctx, *dsn)
		if err != nil {
			logger.Fatalf("Connect to postgres: %v", err)
		}
		defer pool.Close()

		store, err = pgstore.NewPriceHistoryStore(pool, *table)
		if err != nil {
			logger.Fatalf("Create store: %v", err)
		}
	}

	runner := pipeline.NewRunner(pipeline.RunnerOptions{
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
	})

	records := runScrapers(ctx, scrapers, metrics, logger)
	logger.Printf("Scraped %d candidate records from %d brands", len(records), len(scrapers))

	results, err := runner.IngestBatch(ctx, records)
	if err != nil {
		logger.Fatalf("Run aborted: %v", err)
	}

	counts := map[domain.IngestStatus]int{}
	failed := 0
	for _, result := range results {
		counts[result.Status]++
		if result.Status == domain.StatusFailed {
			failed++
		}
	}
	logger.Printf("Done: %d inserted, %d unchanged, %d rejected, %d failed",
		counts[domain.StatusInserted], counts[domain.StatusUnchanged],
		counts[domain.StatusRejected], counts[domain.StatusFailed])

	if failed > 0 {
		os.Exit(1)
	}
	metrics.LastSuccessfulRun.SetToCurrentTime()
}

// resolveScrapers builds the scraper set from the --brands flag.
func resolveScrapers(brands string, cfg *config.Config, logger *log.Logger) []scrape.Scraper {
	available := map[string]scrape.Scraper{
		"tesla":  scrape.NewTeslaScraper(cfg.TeslaBaseURL),
		"rivian": scrape.NewRivianScraper(cfg.RivianBaseURL),
		"lucid":  scrape.NewLucidScraper(cfg.LucidBaseURL),
	}

	var selected []scrape.Scraper
	for _, name := range strings.Split(brands, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		s, ok := available[name]
		if !ok {
			logger.Printf("Unknown brand %q, skipping", name)
			continue
		}
		selected = append(selected, s)
	}
	return selected
}

// runScrapers fetches all brands concurrently. A failed brand is logged
// and skipped; the other brands' records still flow to the pipeline.
func runScrapers(ctx context.Context, scrapers []scrape.Scraper, metrics *observability.Metrics, logger *log.Logger) []*domain.CandidateRecord {
	var (
		mu      sync.Mutex
		records []*domain.CandidateRecord
		wg      sync.WaitGroup
	)

	for _, s := range scrapers {
		wg.Add(1)
		go func(s scrape.Scraper) {
			defer wg.Done()

			start := time.Now()
			recs, err := s.Scrape(ctx)
			metrics.ScrapeDuration.WithLabelValues(s.Brand()).Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.ScrapeFailures.WithLabelValues(s.Brand()).Inc()
				logger.Printf("Scrape %s failed: %v", s.Brand(), err)
				return
			}
			metrics.RecordsScraped.WithLabelValues(s.Brand()).Add(float64(len(recs)))

			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()
		}(s)
	}

	wg.Wait()
	return records
}

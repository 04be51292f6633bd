// Package scrape holds the per-brand page fetchers. They are loose
// collaborators of the ingestion pipeline: each produces raw candidate
// records from a manufacturer's public model pages, and extraction gaps
// simply surface as empty fields for the validator to reject.
package scrape

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"ev-price-tracker/internal/domain"
)

// Scraper fetches candidate price records for one brand.
type Scraper interface {
	// Brand returns the normalized brand name the scraper covers.
	Brand() string

	// Scrape fetches the brand's model pages and returns one candidate
	// record per model. Records may be incomplete; validation happens
	// downstream.
	Scrape(ctx context.Context) ([]*domain.CandidateRecord, error)
}

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// newClient builds a resty client with sane defaults for brand sites.
func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9")
}

// fetchDocument GETs a path and parses the response body.
func fetchDocument(ctx context.Context, client *resty.Client, path string) (*goquery.Document, error) {
	res, err := client.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("get %s: status %d", path, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// dollarAmount captures the digits of a dollar price like "$78,000".
var dollarAmount = regexp.MustCompile(`\$\s*([\d,]+)`)

// extractDollars pulls the first dollar amount out of a text blob.
// Returns "" when no price is present; the validator drops such records.
func extractDollars(text string) string {
	m := dollarAmount.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], ",", "")
}

// firstAttr returns the named attribute of the first node in the
// selection for which pred holds.
func firstAttr(sel *goquery.Selection, attr string, pred func(string) bool) string {
	var found string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		if ok && pred(v) {
			found = v
			return false
		}
		return true
	})
	return found
}

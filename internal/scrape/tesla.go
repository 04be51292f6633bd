package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"ev-price-tracker/internal/domain"
)

// TeslaScraper extracts list prices from tesla.com model pages.
type TeslaScraper struct {
	client *resty.Client
	models []string
}

// NewTeslaScraper creates a scraper for the given base URL
// (https://www.tesla.com in production, an httptest server in tests).
func NewTeslaScraper(baseURL string) *TeslaScraper {
	return &TeslaScraper{
		client: newClient(baseURL),
		models: []string{"model s", "model 3", "model x", "model y"},
	}
}

var _ Scraper = (*TeslaScraper)(nil)

func (s *TeslaScraper) Brand() string { return "tesla" }

// Scrape fetches each model page. A failed page fetch fails the run;
// failed field extraction yields an incomplete record instead.
func (s *TeslaScraper) Scrape(ctx context.Context) ([]*domain.CandidateRecord, error) {
	var records []*domain.CandidateRecord

	for _, model := range s.models {
		path := "/" + strings.ReplaceAll(model, " ", "")
		doc, err := fetchDocument(ctx, s.client, path)
		if err != nil {
			return nil, fmt.Errorf("tesla %s: %w", model, err)
		}

		records = append(records, &domain.CandidateRecord{
			BrandName:  "tesla",
			ModelName:  model,
			ImageSrc:   s.extractImage(doc, model),
			MSRP:       s.extractMSRP(doc),
			ObservedAt: time.Now().UTC(),
		})
	}

	return records, nil
}

// extractMSRP finds the first dollar amount in the page's disclaimer
// paragraphs, where tesla.com lists the starting price.
func (s *TeslaScraper) extractMSRP(doc *goquery.Document) string {
	var price string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		class, _ := p.Attr("class")
		if !strings.Contains(strings.ToLower(class), "disclaimer") {
			return true
		}
		if v := extractDollars(p.Text()); v != "" {
			price = v
			return false
		}
		return true
	})
	return price
}

// extractImage finds the order-page hero image for the model via the
// picture elements' data-alt / data-iesrc attributes.
func (s *TeslaScraper) extractImage(doc *goquery.Document, model string) string {
	pictures := doc.Find("picture").FilterFunction(func(_ int, p *goquery.Selection) bool {
		alt, _ := p.Attr("data-alt")
		return strings.Contains(strings.ToLower(alt), model)
	})
	return firstAttr(pictures, "data-iesrc", func(v string) bool {
		return strings.Contains(strings.ToLower(v), "order")
	})
}

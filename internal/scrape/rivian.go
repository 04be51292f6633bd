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

// rivianModel pairs a model page slug with its body style.
type rivianModel struct {
	name    string
	carType string
}

// RivianScraper extracts list prices from rivian.com model pages.
type RivianScraper struct {
	client *resty.Client
	models []rivianModel
}

// NewRivianScraper creates a scraper for the given base URL.
func NewRivianScraper(baseURL string) *RivianScraper {
	return &RivianScraper{
		client: newClient(baseURL),
		models: []rivianModel{
			{name: "r1s", carType: "suv"},
			{name: "r1t", carType: "truck"},
		},
	}
}

var _ Scraper = (*RivianScraper)(nil)

func (s *RivianScraper) Brand() string { return "rivian" }

// Scrape fetches each model page. A failed page fetch fails the run;
// failed field extraction yields an incomplete record instead.
func (s *RivianScraper) Scrape(ctx context.Context) ([]*domain.CandidateRecord, error) {
	var records []*domain.CandidateRecord

	for _, model := range s.models {
		doc, err := fetchDocument(ctx, s.client, "/"+model.name)
		if err != nil {
			return nil, fmt.Errorf("rivian %s: %w", model.name, err)
		}

		records = append(records, &domain.CandidateRecord{
			BrandName:  "rivian",
			ModelName:  model.name,
			CarType:    model.carType,
			ImageSrc:   s.extractImage(doc, model.name),
			MSRP:       s.extractMSRP(doc),
			ObservedAt: time.Now().UTC(),
		})
	}

	return records, nil
}

// extractMSRP reads the dollar amount from the "starting price" section
// headings rivian.com tags with data-section-gtm.
func (s *RivianScraper) extractMSRP(doc *goquery.Document) string {
	var price string
	doc.Find("div[data-section-gtm]").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		section, _ := div.Attr("data-section-gtm")
		if !strings.Contains(strings.ToLower(section), "starting price") {
			return true
		}
		div.Find("h5").Each(func(_ int, h *goquery.Selection) {
			if v := extractDollars(h.Text()); v != "" {
				price = v
			}
		})
		return price == ""
	})
	return price
}

// extractImage finds the CDN-optimized hero image carrying the
// upper-cased model name in its URL.
func (s *RivianScraper) extractImage(doc *goquery.Document, model string) string {
	upper := strings.ToUpper(model)
	return firstAttr(doc.Find("img"), "src", func(v string) bool {
		return strings.Contains(v, upper) && strings.Contains(v, "f_auto,q_auto")
	})
}

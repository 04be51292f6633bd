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

// lucidModel pairs a model page slug with its body style.
type lucidModel struct {
	name    string
	carType string
}

// LucidScraper extracts list prices from lucidmotors.com model pages.
type LucidScraper struct {
	client *resty.Client
	models []lucidModel
}

// NewLucidScraper creates a scraper for the given base URL.
func NewLucidScraper(baseURL string) *LucidScraper {
	return &LucidScraper{
		client: newClient(baseURL),
		models: []lucidModel{
			{name: "air", carType: "sedan"},
			{name: "gravity", carType: "suv"},
		},
	}
}

var _ Scraper = (*LucidScraper)(nil)

func (s *LucidScraper) Brand() string { return "lucid" }

// Scrape fetches each model page. A failed page fetch fails the run;
// failed field extraction yields an incomplete record instead.
func (s *LucidScraper) Scrape(ctx context.Context) ([]*domain.CandidateRecord, error) {
	var records []*domain.CandidateRecord

	for _, model := range s.models {
		doc, err := fetchDocument(ctx, s.client, "/"+model.name)
		if err != nil {
			return nil, fmt.Errorf("lucid %s: %w", model.name, err)
		}

		records = append(records, &domain.CandidateRecord{
			BrandName:  "lucid",
			ModelName:  model.name,
			CarType:    model.carType,
			ImageSrc:   s.extractImage(doc, model.name),
			MSRP:       s.extractMSRP(doc),
			ObservedAt: time.Now().UTC(),
		})
	}

	return records, nil
}

// extractMSRP reads the first dollar amount out of the pricing headings.
func (s *LucidScraper) extractMSRP(doc *goquery.Document) string {
	var price string
	doc.Find("h2, h3, h5, span").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := h.Text()
		if !strings.Contains(strings.ToLower(text), "starting") {
			return true
		}
		if v := extractDollars(text); v != "" {
			price = v
			return false
		}
		return true
	})
	return price
}

// extractImage finds the model hero image by its alt text.
func (s *LucidScraper) extractImage(doc *goquery.Document, model string) string {
	imgs := doc.Find("img").FilterFunction(func(_ int, img *goquery.Selection) bool {
		alt, _ := img.Attr("alt")
		return strings.Contains(strings.ToLower(alt), model)
	})
	return firstAttr(imgs, "src", func(v string) bool { return v != "" })
}

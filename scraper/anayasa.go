package scraper

import (
	"context"
	"net/url"
	"strings"

	"justlaw-backend/models"

	"github.com/PuerkitoBio/goquery"
)

const anayasaBaseURL = "https://normkararlarbilgibankasi.anayasa.gov.tr"

// Norm review results list only a linked title per row
var anayasaLayout = listLayout{
	primary:  "tr.karar-satir, div.karar-satir",
	fallback: "div.card",
	title:    "a, td, h5",
}

// AnayasaScraper searches Constitutional Court (Anayasa Mahkemesi) norm
// review decisions
type AnayasaScraper struct {
	*session
}

func NewAnayasaScraper(opts Options) *AnayasaScraper {
	return &AnayasaScraper{session: newSession(anayasaBaseURL, opts)}
}

func (s *AnayasaScraper) Source() models.SourceTag { return models.SourceAnayasa }

func (s *AnayasaScraper) Search(ctx context.Context, query string, limit int) ([]models.DecisionRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("aranan", query)
	params.Set("sayfa", "1")

	doc, err := s.get(ctx, "/Arama", params, nil)
	if err != nil {
		return nil, err
	}
	return parseAnayasa(doc, limit), nil
}

func parseAnayasa(doc *goquery.Document, limit int) []models.DecisionRecord {
	return parseResultList(doc, anayasaLayout, limit, func(title, content string) (models.DecisionRecord, bool) {
		rec, ok := newRecord(models.SourceAnayasa, models.SourceAnayasa.DisplayName(), title, content)
		rec.Chamber = models.SourceAnayasa.DisplayName()
		return rec, ok
	})
}

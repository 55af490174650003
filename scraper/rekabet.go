package scraper

import (
	"context"
	"net/url"
	"strings"

	"justlaw-backend/models"

	"github.com/PuerkitoBio/goquery"
)

const rekabetBaseURL = "https://www.rekabet.gov.tr"

var rekabetLayout = listLayout{
	primary:  ".karar-item",
	fallback: ".list-item",
	title:    "a, td, h5",
}

// RekabetScraper searches Competition Authority (Rekabet Kurumu) board decisions
type RekabetScraper struct {
	*session
}

func NewRekabetScraper(opts Options) *RekabetScraper {
	return &RekabetScraper{session: newSession(rekabetBaseURL, opts)}
}

func (s *RekabetScraper) Source() models.SourceTag { return models.SourceRekabet }

func (s *RekabetScraper) Search(ctx context.Context, query string, limit int) ([]models.DecisionRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	params := url.Values{}
	params.Set("SearchText", query)

	doc, err := s.get(ctx, "/tr/KararArama", params, nil)
	if err != nil {
		return nil, err
	}
	return parseRekabet(doc, limit), nil
}

func parseRekabet(doc *goquery.Document, limit int) []models.DecisionRecord {
	return parseResultList(doc, rekabetLayout, limit, func(title, content string) (models.DecisionRecord, bool) {
		rec, ok := newRecord(models.SourceRekabet, models.SourceRekabet.DisplayName(), title, content)
		rec.Chamber = models.SourceRekabet.DisplayName()
		return rec, ok
	})
}

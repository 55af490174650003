package scraper

import (
	"context"
	"net/url"
	"strings"

	"justlaw-backend/models"

	"github.com/PuerkitoBio/goquery"
)

const danistayBaseURL = "https://karararama.danistay.gov.tr"

var danistayLayout = listLayout{
	primary:  "div.card",
	fallback: "tr",
	title:    "h5, a, td",
	content:  "p, div",
}

// DanistayScraper searches Council of State (Danıştay) decisions
type DanistayScraper struct {
	*session
}

func NewDanistayScraper(opts Options) *DanistayScraper {
	return &DanistayScraper{session: newSession(danistayBaseURL, opts)}
}

func (s *DanistayScraper) Source() models.SourceTag { return models.SourceDanistay }

func (s *DanistayScraper) Search(ctx context.Context, query string, limit int) ([]models.DecisionRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	form := url.Values{}
	form.Set("aranan", query)
	form.Set("aramaTipi", "1")

	doc, err := s.postForm(ctx, "/aramasonuc", form, nil)
	if err != nil {
		return nil, err
	}
	return parseDanistay(doc, limit), nil
}

func parseDanistay(doc *goquery.Document, limit int) []models.DecisionRecord {
	return parseResultList(doc, danistayLayout, limit, func(title, content string) (models.DecisionRecord, bool) {
		return newRecord(models.SourceDanistay, models.SourceDanistay.DisplayName(), title, content)
	})
}

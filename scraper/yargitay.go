package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"justlaw-backend/models"

	"github.com/PuerkitoBio/goquery"
)

const yargitayBaseURL = "https://karararama.yargitay.gov.tr"

var yargitayLayout = listLayout{
	primary:  "div.card",
	fallback: "tr",
	title:    "h5, a, td",
	content:  "p, div",
}

// YargitayScraper searches Court of Cassation (Yargıtay) decisions.
// The search form is protected by hidden tokens, so every search first loads
// the landing page to collect them.
type YargitayScraper struct {
	*session
}

// NewYargitayScraper creates a Yargıtay scraper with its own session
func NewYargitayScraper(opts Options) *YargitayScraper {
	return &YargitayScraper{session: newSession(yargitayBaseURL, opts)}
}

func (s *YargitayScraper) Source() models.SourceTag { return models.SourceYargitay }

// Search runs a full-text decision search
func (s *YargitayScraper) Search(ctx context.Context, query string, limit int) ([]models.DecisionRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	landing, err := s.get(ctx, "/", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load search tokens: %w", err)
	}
	form := formInputs(landing)
	form.Set("aranan", query)

	doc, err := s.postForm(ctx, "/aramasonuc", form, map[string]string{
		"Referer": s.baseURL,
		"Origin":  s.baseURL,
	})
	if err != nil {
		return nil, err
	}
	return parseYargitay(doc, limit), nil
}

// formInputs copies every named input of the page, hidden tokens included
func formInputs(doc *goquery.Document) url.Values {
	form := url.Values{}
	doc.Find("input").Each(func(_ int, in *goquery.Selection) {
		name, ok := in.Attr("name")
		if !ok || name == "" {
			return
		}
		value, _ := in.Attr("value")
		form.Set(name, value)
	})
	return form
}

func parseYargitay(doc *goquery.Document, limit int) []models.DecisionRecord {
	return parseResultList(doc, yargitayLayout, limit, func(title, content string) (models.DecisionRecord, bool) {
		return newRecord(models.SourceYargitay, "", title, content)
	})
}

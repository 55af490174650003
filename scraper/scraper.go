// Package scraper searches Turkish court and authority websites for
// decisions and turns their result pages into DecisionRecords.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"justlaw-backend/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultHTTPTimeout = 30 * time.Second
)

// maxPageBytes caps how much of a response body is read
var maxPageBytes int64 = 5 << 20

// Scraper searches a single decision source. A Scraper owns its HTTP session;
// callers must call Close once they are done with it, whether or not Search
// succeeded.
type Scraper interface {
	Source() models.SourceTag
	Search(ctx context.Context, query string, limit int) ([]models.DecisionRecord, error)
	Close()
}

// Options configures a scraper. Zero values select the site defaults.
type Options struct {
	BaseURL     string
	UserAgent   string
	HTTPTimeout time.Duration
}

// New constructs the scraper for a source tag
func New(tag models.SourceTag, opts Options) (Scraper, error) {
	switch tag {
	case models.SourceYargitay:
		return NewYargitayScraper(opts), nil
	case models.SourceDanistay:
		return NewDanistayScraper(opts), nil
	case models.SourceAnayasa:
		return NewAnayasaScraper(opts), nil
	case models.SourceRekabet:
		return NewRekabetScraper(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, tag)
	}
}

// session is the per-scraper HTTP state: a private transport and cookie jar
type session struct {
	baseURL   string
	userAgent string
	transport *http.Transport
	client    *http.Client
}

func newSession(defaultBaseURL string, opts Options) *session {
	base := opts.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	// cookiejar.New only fails on a bad PublicSuffixList, and we pass none
	jar, _ := cookiejar.New(nil)
	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &session{
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: ua,
		transport: transport,
		client: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   timeout,
		},
	}
}

// Close drops every pooled connection held by the session
func (s *session) Close() {
	s.transport.CloseIdleConnections()
}

func (s *session) get(ctx context.Context, path string, params url.Values, headers map[string]string) (*goquery.Document, error) {
	target := s.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return s.do(req, headers)
}

func (s *session) postForm(ctx context.Context, path string, form url.Values, headers map[string]string) (*goquery.Document, error) {
	target := s.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, headers)
}

func (s *session) do(req *http.Request, headers map[string]string) (*goquery.Document, error) {
	req.Header.Set("User-Agent", s.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()
	body := io.LimitReader(resp.Body, maxPageBytes)

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, body)
		return nil, &StatusError{URL: req.URL.Redacted(), StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}

// listLayout describes where decisions live on a result page
type listLayout struct {
	primary  string // result container selector
	fallback string // used only when primary matches nothing
	title    string
	content  string // empty when the title is the only text
}

// parseResultList walks the result containers of doc and builds at most limit
// records. build receives the cleaned title and content texts and may reject
// an item by returning false.
func parseResultList(doc *goquery.Document, layout listLayout, limit int, build func(title, content string) (models.DecisionRecord, bool)) []models.DecisionRecord {
	items := doc.Find(layout.primary)
	if items.Length() == 0 && layout.fallback != "" {
		items = doc.Find(layout.fallback)
	}

	records := make([]models.DecisionRecord, 0)
	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if limit > 0 && len(records) >= limit {
			return false
		}
		titleSel := item.Find(layout.title).First()
		if titleSel.Length() == 0 {
			return true
		}
		title := cleanText(titleSel.Text())

		var content string
		if layout.content != "" {
			content = cleanText(item.Find(layout.content).First().Text())
		}

		if rec, ok := build(title, content); ok {
			records = append(records, rec)
		}
		return true
	})
	return records
}

// newRecord fills summary and full text from the page texts. It reports false
// when the item carries no text at all.
func newRecord(source models.SourceTag, chamber, title, content string) (models.DecisionRecord, bool) {
	body := content
	if body == "" {
		body = title
	}
	if body == "" {
		return models.DecisionRecord{}, false
	}

	cit := ParseCitation(title)
	if cit.Chamber != "" {
		chamber = cit.Chamber
	}
	return models.DecisionRecord{
		CaseNumber:   cit.CaseNumber,
		RulingNumber: cit.RulingNumber,
		Chamber:      chamber,
		Date:         cit.Date,
		Summary:      truncateRunes(body, SummaryRunes),
		FullText:     body,
		Source:       source,
	}, true
}

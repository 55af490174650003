package models

import "strings"

// SourceTag identifies the court or institution a decision came from
type SourceTag string

const (
	SourceYargitay SourceTag = "yargitay"
	SourceDanistay SourceTag = "danistay"
	SourceAnayasa  SourceTag = "anayasa"
	SourceRekabet  SourceTag = "rekabet"
)

// AllSources lists every supported source in its default search order
var AllSources = []SourceTag{SourceYargitay, SourceDanistay, SourceAnayasa, SourceRekabet}

// DisplayName returns the institution name shown to users
func (s SourceTag) DisplayName() string {
	switch s {
	case SourceYargitay:
		return "Yargıtay"
	case SourceDanistay:
		return "Danıştay"
	case SourceAnayasa:
		return "Anayasa Mahkemesi"
	case SourceRekabet:
		return "Rekabet Kurumu"
	default:
		return string(s)
	}
}

// IsKnown reports whether the tag names a supported source
func (s SourceTag) IsKnown() bool {
	for _, known := range AllSources {
		if s == known {
			return true
		}
	}
	return false
}

// DecisionRecord represents a single court ruling (karar)
type DecisionRecord struct {
	CaseNumber   string    `json:"case_number,omitempty"`   // esas no, e.g. 2023/1234
	RulingNumber string    `json:"ruling_number,omitempty"` // karar no
	Chamber      string    `json:"chamber"`
	Date         string    `json:"date,omitempty"` // free-form, usually DD.MM.YYYY
	Summary      string    `json:"summary"`
	FullText     string    `json:"full_text"`
	Source       SourceTag `json:"source"`
	IsSynthetic  bool      `json:"is_synthetic"`
}

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// SearchRequest is a normalized, read-only legal search request
type SearchRequest struct {
	query   string
	sources []SourceTag
	limit   int
}

// NewSearchRequest builds a search request. Source tags are trimmed and
// lowercased, blanks and repeats are dropped, and first-seen order is kept.
// An empty source list selects every supported source. The limit is clamped
// to [1, MaxSearchLimit], zero or negative meaning DefaultSearchLimit.
func NewSearchRequest(query string, sources []SourceTag, limit int) SearchRequest {
	seen := make(map[SourceTag]bool, len(sources))
	normalized := make([]SourceTag, 0, len(sources))
	for _, s := range sources {
		tag := SourceTag(strings.ToLower(strings.TrimSpace(string(s))))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	if len(normalized) == 0 {
		normalized = append(normalized, AllSources...)
	}

	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	return SearchRequest{
		query:   strings.TrimSpace(query),
		sources: normalized,
		limit:   limit,
	}
}

// ParseSources splits a comma separated source list ("yargitay,danistay")
func ParseSources(raw string) []SourceTag {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]SourceTag, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, SourceTag(p))
	}
	return tags
}

func (r SearchRequest) Query() string { return r.query }
func (r SearchRequest) Limit() int    { return r.limit }

// Sources returns a copy of the requested sources in request order
func (r SearchRequest) Sources() []SourceTag {
	out := make([]SourceTag, len(r.sources))
	copy(out, r.sources)
	return out
}

// Requested reports whether tag is one of the requested sources
func (r SearchRequest) Requested(tag SourceTag) bool {
	for _, s := range r.sources {
		if s == tag {
			return true
		}
	}
	return false
}

// SourceOutcome is the result of one fan-out branch
type SourceOutcome struct {
	Source  SourceTag        `json:"source"`
	Records []DecisionRecord `json:"records"`
	Error   string           `json:"error,omitempty"`
}

// SyntheticDisclaimer must accompany every response carrying synthetic records
const SyntheticDisclaimer = "AI-generated, not verified against official sources"

// SearchEnvelope is the response body returned to search clients
type SearchEnvelope struct {
	Results     []DecisionRecord     `json:"results"`
	Total       int                  `json:"total"`
	Sources     []SourceTag          `json:"sources"`
	Message     string               `json:"message"`
	Errors      map[SourceTag]string `json:"errors,omitempty"`
	IsSynthetic bool                 `json:"is_synthetic"`
	Disclaimer  string               `json:"disclaimer,omitempty"`
}

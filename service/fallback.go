package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"justlaw-backend/models"
)

// MaxSyntheticRecords caps how many decisions the fallback asks the model for
const MaxSyntheticRecords = 8

// syntheticCount returns how many records the fallback may produce
func syntheticCount(limit int) int {
	n := min(limit, MaxSyntheticRecords)
	if n < 1 {
		n = 1
	}
	return n
}

// Synthesize asks the generator for decision summaries when no source
// returned anything. Every record it returns is flagged synthetic and carries
// a requested source tag. Model or decoding failures yield no records.
func (s *SearchService) Synthesize(ctx context.Context, req models.SearchRequest) []models.DecisionRecord {
	if s.generator == nil {
		return []models.DecisionRecord{}
	}
	// synthetic records must carry a requested tag the model can be told about
	if !hasKnownSource(req) {
		return []models.DecisionRecord{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.fallbackTimeout)
	defer cancel()

	n := syntheticCount(req.Limit())
	text, err := s.generator.Generate(ctx, buildFallbackPrompt(req, n))
	if err != nil {
		log.Printf("Warning: AI fallback failed for %q: %v", req.Query(), err)
		return []models.DecisionRecord{}
	}

	records := parseSyntheticRecords(text, req, n)
	if len(records) == 0 {
		log.Printf("Warning: AI fallback returned no usable records for %q", req.Query())
	}
	return records
}

func buildFallbackPrompt(req models.SearchRequest, n int) string {
	var names, tags []string
	for _, tag := range req.Sources() {
		if !tag.IsKnown() {
			continue
		}
		names = append(names, tag.DisplayName())
		tags = append(tags, string(tag))
	}

	return fmt.Sprintf(`Türk hukukunda "%s" konusuyla ilgili %d adet emsal karar özeti oluştur.

Kurumlar: %s

Gerçekçi daire isimleri, esas ve karar numaraları ile tarihler (GG.AA.YYYY) kullan.
Her karar için tam olarak şu JSON yapısını kullan:
[
  {
    "case_number": "2023/1234",
    "ruling_number": "2024/567",
    "chamber": "2. Hukuk Dairesi",
    "date": "12.03.2024",
    "summary": "Kararın kısa özeti",
    "full_text": "Kararın gerekçesi ve hüküm kısmı",
    "source": "%s"
  }
]

"source" alanı yalnızca şu değerlerden biri olabilir: %s.
Sadece JSON array döndür, başka açıklama ekleme.`,
		req.Query(), n, strings.Join(names, ", "), tags[0], strings.Join(tags, ", "))
}

type syntheticRecord struct {
	CaseNumber   string `json:"case_number"`
	RulingNumber string `json:"ruling_number"`
	Chamber      string `json:"chamber"`
	Date         string `json:"date"`
	Summary      string `json:"summary"`
	FullText     string `json:"full_text"`
	Source       string `json:"source"`
}

// parseSyntheticRecords decodes the model output and normalizes it into at
// most n synthetic records.
func parseSyntheticRecords(text string, req models.SearchRequest, n int) []models.DecisionRecord {
	records := make([]models.DecisionRecord, 0, n)

	raw, ok := decodeRecordList(text)
	if !ok {
		return records
	}

	fallbackSource := defaultSyntheticSource(req)
	for _, r := range raw {
		if len(records) >= n {
			break
		}
		summary := strings.TrimSpace(r.Summary)
		fullText := strings.TrimSpace(r.FullText)
		if summary == "" && fullText == "" {
			continue
		}
		if summary == "" {
			summary = fullText
		}
		if fullText == "" {
			fullText = summary
		}

		source := models.SourceTag(strings.ToLower(strings.TrimSpace(r.Source)))
		if !source.IsKnown() || !req.Requested(source) {
			source = fallbackSource
		}

		records = append(records, models.DecisionRecord{
			CaseNumber:   strings.TrimSpace(r.CaseNumber),
			RulingNumber: strings.TrimSpace(r.RulingNumber),
			Chamber:      strings.TrimSpace(r.Chamber),
			Date:         strings.TrimSpace(r.Date),
			Summary:      summary,
			FullText:     fullText,
			Source:       source,
			IsSynthetic:  true,
		})
	}
	return records
}

func hasKnownSource(req models.SearchRequest) bool {
	for _, tag := range req.Sources() {
		if tag.IsKnown() {
			return true
		}
	}
	return false
}

// defaultSyntheticSource is the first requested source that is supported
func defaultSyntheticSource(req models.SearchRequest) models.SourceTag {
	for _, tag := range req.Sources() {
		if tag.IsKnown() {
			return tag
		}
	}
	return models.SourceYargitay
}

// decodeRecordList accepts an array of records, an object with a "results"
// array, or a single record object.
func decodeRecordList(text string) ([]syntheticRecord, bool) {
	span, ok := ExtractJSON(text)
	if !ok {
		return nil, false
	}

	if span[0] == '[' {
		var list []syntheticRecord
		if err := json.Unmarshal([]byte(span), &list); err != nil {
			return nil, false
		}
		return list, true
	}

	var wrapped struct {
		Results []syntheticRecord `json:"results"`
	}
	if err := json.Unmarshal([]byte(span), &wrapped); err == nil && wrapped.Results != nil {
		return wrapped.Results, true
	}

	var single syntheticRecord
	if err := json.Unmarshal([]byte(span), &single); err != nil {
		return nil, false
	}
	return []syntheticRecord{single}, true
}

// ExtractJSON returns the first balanced [...] or {...} span in text. Brackets
// inside JSON strings are ignored. It reports false if no balanced span exists.
func ExtractJSON(text string) (string, bool) {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return "", false
	}

	var stack []byte
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[', '{':
			stack = append(stack, c)
		case ']', '}':
			if len(stack) == 0 {
				return "", false
			}
			open := stack[len(stack)-1]
			if (open == '[' && c != ']') || (open == '{' && c != '}') {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

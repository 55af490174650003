package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SummaryRunes is the maximum summary length kept per decision
const SummaryRunes = 500

var (
	caseNumberRe   = regexp.MustCompile(`(?:\bE\.|Esas(?:\s+No)?\s*:?)\s*(\d{4}/\d+)`)
	rulingNumberRe = regexp.MustCompile(`(?:\bK\.|Karar(?:\s+No)?\s*:?)\s*(\d{4}/\d+)`)
	dateRe         = regexp.MustCompile(`\b(\d{2}\.\d{2}\.\d{4})\b`)
	chamberRe      = regexp.MustCompile(`(\d+)\.\s*(Hukuk|Ceza)\s+Dairesi`)
	generalBoardRe = regexp.MustCompile(`(Hukuk|Ceza)\s+Genel\s+Kurulu`)
	councilRe      = regexp.MustCompile(`(\d+)\.\s*Daire(?:si)?\b`)
)

// Citation holds the identifiers found in a decision title. Any field that
// could not be matched is left empty.
type Citation struct {
	CaseNumber   string
	RulingNumber string
	Chamber      string
	Date         string
}

// ParseCitation extracts case number (E. 2023/123), ruling number
// (K. 2024/45), chamber (3. Hukuk Dairesi, 5. Daire) and date (DD.MM.YYYY)
// from free text.
func ParseCitation(text string) Citation {
	var c Citation
	if m := caseNumberRe.FindStringSubmatch(text); m != nil {
		c.CaseNumber = m[1]
	}
	if m := rulingNumberRe.FindStringSubmatch(text); m != nil {
		c.RulingNumber = m[1]
	}
	if m := dateRe.FindStringSubmatch(text); m != nil {
		c.Date = m[1]
	}

	switch {
	case chamberRe.MatchString(text):
		m := chamberRe.FindStringSubmatch(text)
		c.Chamber = m[1] + ". " + m[2] + " Dairesi"
	case generalBoardRe.MatchString(text):
		m := generalBoardRe.FindStringSubmatch(text)
		c.Chamber = m[1] + " Genel Kurulu"
	case councilRe.MatchString(text):
		m := councilRe.FindStringSubmatch(text)
		c.Chamber = m[1] + ". Daire"
	}
	return c
}

// cleanText collapses all whitespace runs into single spaces
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes cuts s to at most n runes without splitting a character
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

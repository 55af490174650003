package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"justlaw-backend/models"
)

const (
	MessageSuccess   = "success"
	MessageSynthetic = "AI-generated results (official sources unavailable)"
	MessageNoResults = "no results found"
)

// BuildEnvelope assembles the client response. Scraped records win; the
// synthetic set is used only when nothing was scraped.
func BuildEnvelope(req models.SearchRequest, result *SearchAllResult, synthetic []models.DecisionRecord) *models.SearchEnvelope {
	env := &models.SearchEnvelope{
		Results: []models.DecisionRecord{},
		Sources: req.Sources(),
	}

	if result != nil {
		env.Results = append(env.Results, result.Records...)
		if len(result.Errors) > 0 {
			env.Errors = make(map[models.SourceTag]string, len(result.Errors))
			for tag, msg := range result.Errors {
				env.Errors[tag] = msg
			}
		}
	}

	switch {
	case len(env.Results) > 0:
		env.Message = MessageSuccess
	case len(synthetic) > 0:
		env.Results = append(env.Results, synthetic...)
		env.Message = MessageSynthetic
	default:
		env.Message = MessageNoResults
	}

	for _, rec := range env.Results {
		if rec.IsSynthetic {
			env.IsSynthetic = true
			env.Disclaimer = models.SyntheticDisclaimer
			break
		}
	}

	env.Total = len(env.Results)
	return env
}

// WriteTable prints an envelope for terminals
func WriteTable(env *models.SearchEnvelope, w io.Writer) {
	if env.IsSynthetic {
		fmt.Fprintf(w, "!! %s\n\n", env.Disclaimer)
	}

	if len(env.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tSOURCE\tCHAMBER\tCASE\tRULING\tDATE\tSUMMARY")
		for i, r := range env.Results {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i+1, r.Source, shorten(r.Chamber, 24), r.CaseNumber, r.RulingNumber, r.Date, shorten(r.Summary, 60))
		}
		tw.Flush()
	}

	fmt.Fprintf(w, "\n%d results (%s)\n", env.Total, env.Message)

	if len(env.Errors) > 0 {
		tags := make([]string, 0, len(env.Errors))
		for tag := range env.Errors {
			tags = append(tags, string(tag))
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Fprintf(w, "  %s: %s\n", tag, env.Errors[models.SourceTag(tag)])
		}
	}
}

// WriteJSON prints an envelope as indented JSON
func WriteJSON(env *models.SearchEnvelope, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n-3])) + "..."
}

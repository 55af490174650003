package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog records one legal search. Decision content is never stored.
type SearchLog struct {
	ID          uuid.UUID   `json:"id"`
	Query       string      `json:"query"`
	Sources     []SourceTag `json:"sources"`
	Limit       int         `json:"limit"`
	Total       int         `json:"total"`
	IsSynthetic bool        `json:"is_synthetic"`
	ErrorCount  int         `json:"error_count"`
	DurationMs  int64       `json:"duration_ms"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SourceStrings converts the log's sources for TEXT[] columns
func (l *SearchLog) SourceStrings() []string {
	out := make([]string, len(l.Sources))
	for i, s := range l.Sources {
		out[i] = string(s)
	}
	return out
}

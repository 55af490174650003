package scraper

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed source search
type ErrorKind string

const (
	ErrorNetwork       ErrorKind = "network"
	ErrorTimeout       ErrorKind = "timeout"
	ErrorParse         ErrorKind = "parse"
	ErrorUnknownSource ErrorKind = "unknown_source"
)

var (
	ErrUnknownSource = errors.New("unknown source")
	ErrParse         = errors.New("failed to parse result page")
)

// StatusError is returned when a court site answers with a non-200 status
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d from %s", e.StatusCode, e.URL)
}

// ClassifyError maps a scraper error onto its ErrorKind. A nil error has no kind.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTimeout
	case errors.Is(err, ErrUnknownSource):
		return ErrorUnknownSource
	case errors.Is(err, ErrParse):
		return ErrorParse
	case errors.As(err, &statusErr):
		return ErrorNetwork
	default:
		return ErrorNetwork
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"justlaw-backend/models"
	"justlaw-backend/scraper"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBranchTimeout   = 8 * time.Second
	DefaultFallbackTimeout = 30 * time.Second

	// BranchTimeoutMessage is recorded for a source that did not answer in time
	BranchTimeoutMessage = "timeout"
)

// ScraperFactory builds the scraper for one source
type ScraperFactory func(tag models.SourceTag) (scraper.Scraper, error)

// SearchLogStore persists search summaries
type SearchLogStore interface {
	Create(ctx context.Context, entry *models.SearchLog) error
	ListRecent(ctx context.Context, limit int) ([]*models.SearchLog, error)
}

// SearchService runs legal searches across the decision sources
type SearchService struct {
	newScraper      ScraperFactory
	generator       Generator
	logStore        SearchLogStore
	branchTimeout   time.Duration
	fallbackTimeout time.Duration
}

// SearchServiceOption is a functional option for SearchService
type SearchServiceOption func(*SearchService)

// SearchWithScraperFactory replaces how scrapers are built
func SearchWithScraperFactory(factory ScraperFactory) SearchServiceOption {
	return func(s *SearchService) {
		s.newScraper = factory
	}
}

// SearchWithScraperOptions builds the real scrapers with the given options
func SearchWithScraperOptions(opts scraper.Options) SearchServiceOption {
	return func(s *SearchService) {
		s.newScraper = func(tag models.SourceTag) (scraper.Scraper, error) {
			return scraper.New(tag, opts)
		}
	}
}

// SearchWithGenerator enables the AI fallback
func SearchWithGenerator(g Generator) SearchServiceOption {
	return func(s *SearchService) {
		s.generator = g
	}
}

// SearchWithLogStore enables search logging
func SearchWithLogStore(store SearchLogStore) SearchServiceOption {
	return func(s *SearchService) {
		s.logStore = store
	}
}

// SearchWithBranchTimeout sets the per-source deadline
func SearchWithBranchTimeout(d time.Duration) SearchServiceOption {
	return func(s *SearchService) {
		if d > 0 {
			s.branchTimeout = d
		}
	}
}

// SearchWithFallbackTimeout bounds the AI fallback call
func SearchWithFallbackTimeout(d time.Duration) SearchServiceOption {
	return func(s *SearchService) {
		if d > 0 {
			s.fallbackTimeout = d
		}
	}
}

// NewSearchService creates a new search service
func NewSearchService(opts ...SearchServiceOption) *SearchService {
	s := &SearchService{
		branchTimeout:   DefaultBranchTimeout,
		fallbackTimeout: DefaultFallbackTimeout,
	}
	SearchWithScraperOptions(scraper.Options{})(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FallbackEnabled reports whether a generator is configured
func (s *SearchService) FallbackEnabled() bool {
	return s.generator != nil
}

// SearchAllResult is the merged output of a fan-out
type SearchAllResult struct {
	Records  []models.DecisionRecord
	Errors   map[models.SourceTag]string
	Outcomes []models.SourceOutcome
}

// SearchAll queries every requested source concurrently and waits for all of
// them. It never fails: a failing or slow source contributes an error entry
// and no records. Records are merged in request source order.
func (s *SearchService) SearchAll(ctx context.Context, req models.SearchRequest) *SearchAllResult {
	sources := req.Sources()
	outcomes := make([]models.SourceOutcome, len(sources))

	var g errgroup.Group
	for i, tag := range sources {
		g.Go(func() error {
			outcomes[i] = s.runBranch(ctx, tag, req.Query(), req.Limit())
			return nil
		})
	}
	_ = g.Wait()

	result := &SearchAllResult{
		Records:  make([]models.DecisionRecord, 0),
		Errors:   make(map[models.SourceTag]string),
		Outcomes: outcomes,
	}
	for _, out := range outcomes {
		result.Records = append(result.Records, out.Records...)
		if out.Error != "" {
			result.Errors[out.Source] = out.Error
		}
	}
	return result
}

type branchResult struct {
	records []models.DecisionRecord
	err     error
}

// runBranch searches one source under its own deadline. The scraper runs in
// its own goroutine so a scraper that ignores ctx cannot hold the branch past
// the deadline; that goroutine still closes the scraper when it returns.
func (s *SearchService) runBranch(ctx context.Context, tag models.SourceTag, query string, limit int) models.SourceOutcome {
	out := models.SourceOutcome{Source: tag, Records: []models.DecisionRecord{}}

	sc, err := s.newScraper(tag)
	if err != nil {
		log.Printf("Warning: no scraper for source %q: %v", tag, err)
		out.Error = err.Error()
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, s.branchTimeout)
	defer cancel()

	done := make(chan branchResult, 1)
	go func() {
		defer sc.Close()
		records, err := sc.Search(ctx, query, limit)
		done <- branchResult{records: records, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			log.Printf("Warning: %s search failed: %v", tag, res.err)
			out.Error = branchErrorMessage(res.err)
			return out
		}
		for _, rec := range res.records {
			rec.Source = tag
			rec.IsSynthetic = false
			out.Records = append(out.Records, rec)
		}
	case <-ctx.Done():
		log.Printf("Warning: %s search abandoned: %v", tag, ctx.Err())
		out.Error = branchErrorMessage(ctx.Err())
	}
	return out
}

func branchErrorMessage(err error) string {
	if scraper.ClassifyError(err) == scraper.ErrorTimeout {
		return BranchTimeoutMessage
	}
	return err.Error()
}

// Search runs the full pipeline: fan-out, AI fallback when nothing was found,
// envelope formatting and search logging.
func (s *SearchService) Search(ctx context.Context, req models.SearchRequest) (*models.SearchEnvelope, error) {
	if req.Query() == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	result := s.SearchAll(ctx, req)

	var synthetic []models.DecisionRecord
	if len(result.Records) == 0 && s.generator != nil {
		synthetic = s.Synthesize(ctx, req)
	}

	env := BuildEnvelope(req, result, synthetic)
	s.recordSearch(ctx, req, env, time.Since(start))
	return env, nil
}

// recordSearch writes a search summary. Failures are only logged.
func (s *SearchService) recordSearch(ctx context.Context, req models.SearchRequest, env *models.SearchEnvelope, took time.Duration) {
	if s.logStore == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	entry := &models.SearchLog{
		Query:       req.Query(),
		Sources:     req.Sources(),
		Limit:       req.Limit(),
		Total:       env.Total,
		IsSynthetic: env.IsSynthetic,
		ErrorCount:  len(env.Errors),
		DurationMs:  took.Milliseconds(),
	}
	if err := s.logStore.Create(ctx, entry); err != nil {
		log.Printf("Warning: failed to record search log: %v", err)
	}
}

// RecentSearches lists the latest logged searches
func (s *SearchService) RecentSearches(ctx context.Context, limit int) ([]*models.SearchLog, error) {
	if s.logStore == nil {
		return nil, ErrSearchLogDisabled
	}
	if limit <= 0 || limit > models.MaxSearchLimit {
		limit = models.DefaultSearchLimit
	}
	logs, err := s.logStore.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	return logs, nil
}

// IsClientError reports whether err was caused by bad input
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrMissingPetitionType) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrFileTooLarge)
}

// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/subjectscore/internal/domain/reportcache"
	"github.com/okian/subjectscore/internal/domain/scoring"
	"github.com/okian/subjectscore/internal/domain/types"
	"github.com/okian/subjectscore/pkg/logger"
	"github.com/okian/subjectscore/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxBatchSize = 1000
	defaultCacheSize    = 10_000
)

// Service implements the API dependencies for the subject line scorer.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer scoring.Scorer
	cache  reportcache.Cache

	// Configuration
	spamTerms    []string
	maxBatchSize int
	cacheSize    int

	// Monitoring counters
	batchesScored  atomic.Int64
	subjectsScored atomic.Int64
	cacheHits      atomic.Int64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSpamTerms overrides the scorer's spam term list.
func WithSpamTerms(terms []string) Option {
	return func(s *Service) {
		if len(terms) > 0 {
			s.spamTerms = terms
		}
	}
}

// WithMaxBatchSize caps the number of subject lines per request.
// Zero means unlimited.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.maxBatchSize = size
		}
	}
}

// WithCacheSize bounds the report memoization cache. Zero disables it.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxBatchSize: defaultMaxBatchSize,
		cacheSize:    defaultCacheSize,
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting subject scorer service...")

	var scorerOpts []scoring.Option
	if len(s.spamTerms) > 0 {
		scorerOpts = append(scorerOpts, scoring.WithSpamTerms(s.spamTerms))
	}
	s.scorer = scoring.NewRuleScorer(scorerOpts...)
	s.cache = reportcache.NewInMemoryCache(
		reportcache.WithMaxSize(s.cacheSize),
	)

	s.started = true
	s.logger.Info(ctx, "subject scorer service started",
		logger.Int("maxBatchSize", s.maxBatchSize),
		logger.Int("cacheSize", s.cacheSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "subject scorer service stopped")
}

// MaxBatchSize returns the configured per-request cap on subject
// lines. Zero means unlimited.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// ScoreBatch evaluates each subject line independently and aggregates
// the batch winner. Scoring is total; there is no error path.
func (s *Service) ScoreBatch(ctx context.Context, subjects []string) types.BatchResult {
	start := time.Now()

	results := make([]types.Report, 0, len(subjects))
	for _, subject := range subjects {
		results = append(results, s.scoreOne(ctx, subject))
	}
	result := types.BatchResult{
		Results:     results,
		BestSubject: scoring.BestSubject(results),
	}

	s.batchesScored.Add(1)
	s.subjectsScored.Add(int64(len(subjects)))
	metrics.RecordBatchScored(len(subjects))
	metrics.RecordScoringDuration(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.UpdateCacheSize(s.cache.Size())

	s.logger.Debug(ctx, "scored batch",
		logger.Int("subjects", len(subjects)),
		logger.String("bestSubject", result.BestSubject),
	)

	return result
}

// scoreOne evaluates a single subject, consulting the report cache
// first. The scorer is deterministic, so cached reports are exact.
func (s *Service) scoreOne(ctx context.Context, subject string) types.Report {
	if r, ok := s.cache.Get(ctx, subject); ok {
		s.cacheHits.Add(1)
		metrics.RecordCacheHit()
		return r
	}
	metrics.RecordCacheMiss()

	r := s.scorer.Score(ctx, subject)
	s.cache.Put(ctx, subject, r)

	metrics.RecordSubjectScored(r.Score, string(r.SpamRisk))
	if r.Length == 0 {
		metrics.RecordEmptySubject()
	}
	for _, w := range r.Warnings {
		metrics.RecordRuleHit(ruleFor(w))
	}

	return r
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"maxBatchSize":   s.maxBatchSize,
		"batchesScored":  s.batchesScored.Load(),
		"subjectsScored": s.subjectsScored.Load(),
		"cacheHits":      s.cacheHits.Load(),
	}

	if s.started {
		cacheSize := s.cache.Size()
		stats["cacheSize"] = cacheSize
		metrics.UpdateCacheSize(cacheSize)
	}

	return stats
}

// ruleFor maps a warning text to its metric rule label.
func ruleFor(warning string) string {
	switch {
	case warning == "Empty subject line":
		return "empty"
	case warning == "Too long (60+ characters)":
		return "length_very_long"
	case warning == "Long (45+ characters)":
		return "length_long"
	case warning == "Too many exclamation marks":
		return "exclamation"
	case warning == "Contains ALL CAPS words":
		return "all_caps"
	case strings.HasPrefix(warning, "Spam term detected"):
		return "spam_term"
	default:
		return "unknown"
	}
}

// Package service owns the scoring engine, resolves collaborator
// availability at startup and exposes what the HTTP API needs.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/introscore/internal/adapters/collab/pool"
	"github.com/okian/introscore/internal/domain/scoring"
	"github.com/okian/introscore/internal/domain/types"
	"github.com/okian/introscore/pkg/logger"
	"github.com/okian/introscore/pkg/metrics"
)

const (
	embeddingName = "embedding"
	grammarName   = "grammar"

	defaultProbeTimeout  = 3 * time.Second
	defaultPoolQueueSize = 64
	poolShutdownTimeout  = 5 * time.Second
)

// Prober reports whether a collaborator is reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// EmbeddingClient is an embedder that can be probed at startup.
type EmbeddingClient interface {
	scoring.Embedder
	Prober
}

// GrammarClient is a grammar checker that can be probed at startup.
type GrammarClient interface {
	scoring.GrammarChecker
	Prober
}

// Service implements the API dependencies for transcript scoring.
type Service struct {
	mu sync.RWMutex

	// Collaborators as configured; nil means not configured.
	embedClient   EmbeddingClient
	grammarClient GrammarClient

	// Configuration
	minWords      int
	probeTimeout  time.Duration
	poolWorkers   int
	poolQueueSize int

	// Resolved at Start
	engine      *scoring.Engine
	embedPool   *pool.Pool
	grammarPool *pool.Pool
	started     bool

	// Counters
	scored     atomic.Int64
	rejected   atomic.Int64
	overloaded atomic.Int64
	failed     atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEmbedder configures the embedding collaborator.
func WithEmbedder(c EmbeddingClient) Option {
	return func(s *Service) {
		s.embedClient = c
	}
}

// WithGrammarChecker configures the grammar collaborator.
func WithGrammarChecker(c GrammarClient) Option {
	return func(s *Service) {
		s.grammarClient = c
	}
}

// WithMinWords overrides the minimum transcript length.
func WithMinWords(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minWords = n
		}
	}
}

// WithProbeTimeout bounds each startup probe.
func WithProbeTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.probeTimeout = d
		}
	}
}

// WithPoolSize sets the worker count and queue size of each collaborator pool.
func WithPoolSize(workers, queueSize int) Option {
	return func(s *Service) {
		if workers > 0 {
			s.poolWorkers = workers
		}
		if queueSize >= 0 {
			s.poolQueueSize = queueSize
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		probeTimeout:  defaultProbeTimeout,
		poolWorkers:   runtime.NumCPU(),
		poolQueueSize: defaultPoolQueueSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start probes the configured collaborators once and builds the engine.
// A collaborator that fails its probe stays disabled for the life of the process.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scoring service...")

	opts := []scoring.Option{}
	if s.minWords > 0 {
		opts = append(opts, scoring.WithMinWords(s.minWords))
	}

	if s.probe(ctx, embeddingName, s.embedClient) {
		s.embedPool = s.newPool(ctx, embeddingName)
		opts = append(opts, scoring.WithEmbedder(pool.GuardEmbedder(s.embedPool, s.embedClient)))
	}
	if s.probe(ctx, grammarName, s.grammarClient) {
		s.grammarPool = s.newPool(ctx, grammarName)
		opts = append(opts, scoring.WithGrammarChecker(pool.GuardGrammarChecker(s.grammarPool, s.grammarClient)))
	}

	s.engine = scoring.NewEngine(opts...)
	s.started = true

	avail := s.engine.Availability()
	s.logger.Info(ctx, "scoring service started",
		logger.Bool("embedding_available", avail.Embedding),
		logger.Bool("grammar_available", avail.Grammar),
		logger.Int("min_words", s.engine.MinWords()),
	)
	return nil
}

// probe reports whether the collaborator is configured and reachable, and
// publishes the result as a gauge.
func (s *Service) probe(ctx context.Context, name string, p Prober) bool {
	if p == nil {
		s.logger.Warn(ctx, "collaborator not configured, running degraded", logger.String("collaborator", name))
		metrics.SetCollaboratorAvailable(name, false)
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	start := time.Now()
	if err := p.Probe(probeCtx); err != nil {
		s.logger.Warn(ctx, "collaborator unavailable, running degraded",
			logger.String("collaborator", name),
			logger.Error(err),
		)
		metrics.SetCollaboratorAvailable(name, false)
		return false
	}
	s.logger.Info(ctx, "collaborator available",
		logger.String("collaborator", name),
		logger.Duration("probe_latency", time.Since(start)),
	)
	metrics.SetCollaboratorAvailable(name, true)
	return true
}

func (s *Service) newPool(ctx context.Context, name string) *pool.Pool {
	p := pool.New(
		pool.WithName(name),
		pool.WithWorkers(s.poolWorkers),
		pool.WithQueueSize(s.poolQueueSize),
		pool.WithLogger(s.logger.Named(name+"-pool")),
	)
	p.Start(ctx)
	return p
}

// Stop drains the collaborator pools.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping scoring service...")
	for _, p := range []*pool.Pool{s.embedPool, s.grammarPool} {
		if p == nil {
			continue
		}
		if err := p.Shutdown(ctx); err != nil {
			s.logger.Error(ctx, "error stopping collaborator pool", logger.String("pool", p.Name()), logger.Error(err))
		}
	}
	s.embedPool, s.grammarPool = nil, nil
	s.started = false
	s.logger.Info(ctx, "scoring service stopped")
}

// Score scores one transcript. Too-short input is returned as
// scoring.ErrInputTooShort; a full collaborator queue as ErrOverloaded.
func (s *Service) Score(ctx context.Context, text string) (types.Report, error) {
	s.mu.RLock()
	engine, started := s.engine, s.started
	s.mu.RUnlock()
	if !started {
		return types.Report{}, ErrNotStarted
	}

	start := time.Now()
	report, err := engine.Score(ctx, text)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	switch {
	case err == nil:
	case errors.Is(err, scoring.ErrInputTooShort):
		s.rejected.Add(1)
		metrics.RecordScoreRequest(metrics.OutcomeRejected)
		s.logger.Debug(ctx, "transcript rejected", logger.Error(err))
		return types.Report{}, err
	case errors.Is(err, pool.ErrPoolBusy):
		s.overloaded.Add(1)
		metrics.RecordScoreRequest(metrics.OutcomeOverloaded)
		s.logger.Warn(ctx, "collaborator pool saturated", logger.Error(err))
		return types.Report{}, fmt.Errorf("%w: %w", ErrOverloaded, err)
	default:
		s.failed.Add(1)
		metrics.RecordScoreRequest(metrics.OutcomeFailed)
		s.logger.Error(ctx, "scoring failed", logger.Error(err))
		return types.Report{}, fmt.Errorf("score transcript: %w", err)
	}

	s.scored.Add(1)
	metrics.RecordScoreRequest(metrics.OutcomeScored)
	metrics.ObserveOverallScore(report.OverallScore)
	metrics.ObserveTranscriptWords(report.WordCount)
	for _, c := range report.PerCriterion {
		metrics.ObserveCriterionScore(c.ID, c.Score)
	}
	s.logger.Info(ctx, "transcript scored",
		logger.Int("overall_score", report.OverallScore),
		logger.Int("word_count", report.WordCount),
		logger.Duration("latency", time.Since(start)),
	)
	return report, nil
}

// Availability reports which collaborators passed their startup probe.
func (s *Service) Availability() scoring.Availability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine == nil {
		return scoring.Availability{}
	}
	return s.engine.Availability()
}

// MinWords returns the shortest transcript Score accepts.
func (s *Service) MinWords() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.engine != nil {
		return s.engine.MinWords()
	}
	if s.minWords > 0 {
		return s.minWords
	}
	return scoring.NewEngine().MinWords()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":             s.started,
		"requests_scored":     s.scored.Load(),
		"requests_rejected":   s.rejected.Load(),
		"requests_overloaded": s.overloaded.Load(),
		"requests_failed":     s.failed.Load(),
	}
	if s.started {
		avail := s.engine.Availability()
		stats["embedding_available"] = avail.Embedding
		stats["grammar_available"] = avail.Grammar
		stats["min_words"] = s.engine.MinWords()
	}
	if s.embedPool != nil {
		stats["embedding_queue_length"] = s.embedPool.Len()
	}
	if s.grammarPool != nil {
		stats["grammar_queue_length"] = s.grammarPool.Len()
	}
	return stats
}

// Package service drives batched, concurrent answer generation with
// rate-limit pacing and statistics accounting.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zen-systems/pollgate/pkg/adapter"
	"github.com/zen-systems/pollgate/pkg/config"
	"github.com/zen-systems/pollgate/pkg/parse"
	"github.com/zen-systems/pollgate/pkg/persona"
	"github.com/zen-systems/pollgate/pkg/poll"
	"github.com/zen-systems/pollgate/pkg/prompt"
)

const (
	// batchSize bounds how many questions generate concurrently.
	batchSize = 3

	// Inter-batch pause range, randomized to avoid upstream rate limits.
	pauseMin = 1 * time.Second
	pauseMax = 3 * time.Second
)

// Service answers question batches through the selected provider, falling
// back to synthesized answers when the provider path fails.
type Service struct {
	provider  adapter.Adapter // nil in degraded mode
	parser    *parse.Parser
	synth     *persona.Synthesizer
	humanizer *persona.Humanizer
	stats     *Tracker
	rng       *persona.Rand

	openaiAvailable    bool
	anthropicAvailable bool

	// sleep paces batches; swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

// New builds a service from configuration. OpenAI is preferred when both
// provider credentials are present; with neither, the service runs degraded
// and every answer is synthesized.
func New(cfg *config.Config) (*Service, error) {
	var provider adapter.Adapter

	switch {
	case cfg.OpenAIAPIKey != "":
		a, err := adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		provider = a
		zap.L().Info("provider selected", zap.String("provider", "openai"), zap.String("model", cfg.OpenAIModel))

	case cfg.AnthropicAPIKey != "":
		a, err := adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			return nil, err
		}
		provider = a
		zap.L().Info("provider selected", zap.String("provider", "anthropic"), zap.String("model", cfg.AnthropicModel))

	default:
		zap.L().Warn("no provider credentials configured; all answers will be synthesized")
	}

	if provider != nil {
		provider = adapter.WithRetry(provider, adapter.DefaultRetryPolicy())
	}

	svc := NewWithProvider(provider, cfg.Seed)
	svc.openaiAvailable = cfg.OpenAIAPIKey != ""
	svc.anthropicAvailable = cfg.AnthropicAPIKey != ""
	return svc, nil
}

// NewWithProvider builds a service around an explicit adapter. A nil provider
// puts the service in degraded mode. Used directly for mock runs and tests.
func NewWithProvider(provider adapter.Adapter, seed int64) *Service {
	rng := persona.NewRand(seed)
	synth := persona.NewSynthesizer(rng)
	return &Service{
		provider:  provider,
		parser:    parse.New(rng, synth),
		synth:     synth,
		humanizer: persona.NewHumanizer(rng),
		stats:     &Tracker{},
		rng:       rng,
		sleep:     sleepContext,
	}
}

// AnswerQuestions generates one answer per question, in input order. Provider
// and parse failures are absorbed per question via the fallback path; only
// structurally invalid input aborts the run.
func (s *Service) AnswerQuestions(ctx context.Context, questions []poll.Question, sharedContext string) ([]poll.Answer, poll.Stats, error) {
	if err := poll.ValidateAll(questions); err != nil {
		return nil, poll.Stats{}, err
	}

	answers := make([]poll.Answer, len(questions))

	for start := 0; start < len(questions); start += batchSize {
		end := min(start+batchSize, len(questions))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				ans := s.generate(gctx, &questions[i], sharedContext)
				s.humanizer.Humanize(&ans, &questions[i])
				answers[i] = ans
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, poll.Stats{}, err
		}

		if end < len(questions) {
			if err := s.sleep(ctx, s.rng.Duration(pauseMin, pauseMax)); err != nil {
				return nil, poll.Stats{}, err
			}
		}
	}

	stats := s.Stats()
	zap.L().Info("processed questions",
		zap.Int("count", len(questions)),
		zap.Float64("total_cost", stats.TotalCost),
	)

	return answers, stats, nil
}

// generate runs one question through the provider and parser; any failure
// yields a synthesized fallback instead. It always returns an answer.
func (s *Service) generate(ctx context.Context, q *poll.Question, extra string) poll.Answer {
	raw, err := s.complete(ctx, q, extra)
	if err != nil {
		zap.L().Warn("generation failed, synthesizing fallback",
			zap.String("question_id", string(q.ID)),
			zap.Error(err),
		)
		return s.synth.Answer(q)
	}
	return s.parser.Parse(q, raw)
}

func (s *Service) complete(ctx context.Context, q *poll.Question, extra string) (string, error) {
	if s.provider == nil {
		return "", adapter.ErrNoProvider
	}

	raw, err := s.provider.Complete(ctx, prompt.System, prompt.Build(q, extra))
	if err != nil {
		return "", err
	}

	s.stats.Record(s.provider.CostPerCall())
	return raw, nil
}

// Stats returns a snapshot of the running counters.
func (s *Service) Stats() poll.Stats {
	return s.stats.Snapshot(s.openaiAvailable, s.anthropicAvailable)
}

// ResetStats zeroes the running counters.
func (s *Service) ResetStats() {
	s.stats.Reset()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

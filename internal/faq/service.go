package faq

import (
	"context"
	"errors"
	"strings"

	"github.com/fazalurrehmanAI/hospital-receptionist/internal/observability/metrics"
	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

// ErrEmptyQuestion is returned when the caller sends a blank question.
var ErrEmptyQuestion = errors.New("faq: empty question")

// Answerer produces a generated reply when no curated FAQ matches.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Result carries an answer and where it came from: "faq" for curated
// entries, "ai" for generated replies (cached or fresh).
type Result struct {
	Answer string
	Source string
}

// Service resolves visitor questions against the curated FAQ list,
// falling back to the generative assistant.
type Service struct {
	repo      *Repository
	cache     *AnswerCache
	assistant Answerer
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

// NewService constructs a FAQ service. cache and m may be nil.
func NewService(repo *Repository, cache *AnswerCache, assistant Answerer, m *metrics.Metrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("faq: repository required")
	}
	if assistant == nil {
		panic("faq: assistant required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, cache: cache, assistant: assistant, metrics: m, logger: logger}
}

// Resolve answers question from the curated list when it matches,
// otherwise from the cache or the assistant.
func (s *Service) Resolve(ctx context.Context, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	if match, ok := s.repo.Match(ctx, question); ok {
		s.metrics.AnswerServed("faq")
		return &Result{Answer: match.Answer, Source: "faq"}, nil
	}

	if s.cache != nil {
		answer, ok, err := s.cache.Get(ctx, question)
		if err != nil {
			// A broken cache never blocks an answer.
			s.logger.Warn("answer cache read failed", "error", err)
		} else if ok {
			s.metrics.AnswerServed("cache")
			return &Result{Answer: answer, Source: "ai"}, nil
		}
	}

	answer, err := s.assistant.Answer(ctx, question)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, question, answer); err != nil {
			s.logger.Warn("answer cache write failed", "error", err)
		}
	}
	s.metrics.AnswerServed("ai")
	return &Result{Answer: answer, Source: "ai"}, nil
}

// Ask sends query straight to the assistant, bypassing the curated list.
func (s *Service) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuestion
	}
	answer, err := s.assistant.Answer(ctx, query)
	if err != nil {
		return "", err
	}
	s.metrics.AnswerServed("ai")
	return answer, nil
}

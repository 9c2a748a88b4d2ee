package assistant

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

var assistantTracer = otel.Tracer("hospital.internal.assistant")

// receptionistPrompt keeps answers in the front-desk voice regardless
// of which provider serves the request.
const receptionistPrompt = "You are a polite, professional hospital receptionist. Answer short, helpful, and factual."

const answerMaxTokens = 256

// ErrEmptyQuery is returned when the caller sends a blank question.
var ErrEmptyQuery = errors.New("assistant: empty query")

// Service answers free-form visitor questions with a generative model.
type Service struct {
	llm     LLMClient
	modelID string
	logger  *logging.Logger
}

// NewService constructs an assistant service. modelID is forwarded to
// providers that route by model id; Gemini ignores it.
func NewService(llm LLMClient, modelID string, logger *logging.Logger) *Service {
	if llm == nil {
		panic("assistant: llm client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{llm: llm, modelID: modelID, logger: logger}
}

// Answer produces a short receptionist-style reply to query.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	ctx, span := assistantTracer.Start(ctx, "assistant.answer")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	resp, err := s.llm.Complete(ctx, LLMRequest{
		Model:       s.modelID,
		System:      []string{receptionistPrompt},
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: query}},
		MaxTokens:   answerMaxTokens,
		Temperature: 0.5,
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return resp.Text, nil
}

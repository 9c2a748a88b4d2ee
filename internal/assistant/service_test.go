package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazalurrehmanAI/hospital-receptionist/pkg/logging"
)

type fakeLLM struct {
	lastReq LLMRequest
	text    string
	err     error
	calls   int
}

func (f *fakeLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return LLMResponse{}, f.err
	}
	return LLMResponse{Text: f.text, StopReason: "end_turn"}, nil
}

func TestAnswer(t *testing.T) {
	llm := &fakeLLM{text: "Visiting hours are 9am to 8pm."}
	svc := NewService(llm, "model-x", logging.New("error"))

	got, err := svc.Answer(context.Background(), "  What are the visiting hours?  ")
	require.NoError(t, err)
	assert.Equal(t, "Visiting hours are 9am to 8pm.", got)

	assert.Equal(t, "model-x", llm.lastReq.Model)
	require.Len(t, llm.lastReq.System, 1)
	assert.Contains(t, llm.lastReq.System[0], "hospital receptionist")
	require.Len(t, llm.lastReq.Messages, 1)
	assert.Equal(t, ChatRoleUser, llm.lastReq.Messages[0].Role)
	assert.Equal(t, "What are the visiting hours?", llm.lastReq.Messages[0].Content)
}

func TestAnswer_EmptyQuery(t *testing.T) {
	llm := &fakeLLM{text: "unused"}
	svc := NewService(llm, "model-x", logging.New("error"))

	_, err := svc.Answer(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, llm.calls)
}

func TestAnswer_ProviderError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("throttled")}
	svc := NewService(llm, "model-x", logging.New("error"))

	_, err := svc.Answer(context.Background(), "hello")
	assert.Error(t, err)
}

func TestFallbackClient_UsesFallbackOnFailure(t *testing.T) {
	primary := &fakeLLM{err: errors.New("unavailable")}
	fallback := &fakeLLM{text: "from fallback"}
	client := NewFallbackLLMClient(primary, fallback, logging.New("error"))

	resp, err := client.Complete(context.Background(), LLMRequest{
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "from fallback", resp.Text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackClient_PrimarySuccessSkipsFallback(t *testing.T) {
	primary := &fakeLLM{text: "from primary"}
	fallback := &fakeLLM{text: "unused"}
	client := NewFallbackLLMClient(primary, fallback, logging.New("error"))

	resp, err := client.Complete(context.Background(), LLMRequest{
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "from primary", resp.Text)
	assert.Zero(t, fallback.calls)
}

func TestFallbackClient_NoFallbackReturnsPrimaryError(t *testing.T) {
	primary := &fakeLLM{err: errors.New("unavailable")}
	client := NewFallbackLLMClient(primary, nil, logging.New("error"))

	_, err := client.Complete(context.Background(), LLMRequest{})
	assert.Error(t, err)
}

package service

import (
	"context"
	"errors"
	"testing"

	"careerpilot-be/internal/constant"
	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Shared test doubles for the service package ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return s.allowed, s.err
}

type stubLLM struct {
	chunks  []string
	reply   string
	err     error
	calls   int
	history []llm.Message
	prompt  string
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	s.history = history
	return s.reply, s.err
}

func (s *stubLLM) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, options ...llm.Option) error {
	s.calls++
	s.history = history
	if s.err != nil {
		return s.err
	}
	for _, c := range s.chunks {
		if err := handler(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.reply, s.err
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

// --- Stream ---

func TestChatStreamRelaysChunksInOrder(t *testing.T) {
	provider := &stubLLM{chunks: []string{"Hel", "lo", " world"}}
	svc := NewChatService(provider, stubLimiter{allowed: true}, 1000, nopLogger{})

	history, err := svc.PrepareStream(context.Background(), uuid.New(), &dto.StreamChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "Hi"}},
	})
	require.NoError(t, err)

	var got []string
	err = svc.RelayStream(context.Background(), uuid.New(), history, func(chunk string) error {
		got = append(got, chunk)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo", " world"}, got)
}

func TestPrepareStreamPrependsSystemPrompt(t *testing.T) {
	svc := NewChatService(&stubLLM{}, stubLimiter{allowed: true}, 1000, nopLogger{})

	history, err := svc.PrepareStream(context.Background(), uuid.New(), &dto.StreamChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "Hi"}},
	})

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, constant.ChatMessageRoleSystem, history[0].Role)
	assert.Equal(t, constant.CareerChatSystemPromptV1, history[0].Content)
	assert.Equal(t, "Hi", history[1].Content)
}

func TestPrepareStreamKeepsClientSystemTurn(t *testing.T) {
	svc := NewChatService(&stubLLM{}, stubLimiter{allowed: true}, 1000, nopLogger{})

	history, err := svc.PrepareStream(context.Background(), uuid.New(), &dto.StreamChatRequest{
		Messages: []dto.ChatMessage{
			{Role: "system", Content: "You are a pirate"},
			{Role: "user", Content: "Hi"},
		},
	})

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "You are a pirate", history[0].Content)
}

func TestPrepareStreamRateLimited(t *testing.T) {
	provider := &stubLLM{chunks: []string{"ok"}}
	svc := NewChatService(provider, stubLimiter{allowed: false}, 1000, nopLogger{})

	_, err := svc.PrepareStream(context.Background(), uuid.New(), &dto.StreamChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "Hi"}},
	})

	assert.Equal(t, 429, appErrCode(t, err))
	assert.Zero(t, provider.calls, "model must not be called once the rate limit trips")
}

func TestPrepareStreamOverTokenCeiling(t *testing.T) {
	provider := &stubLLM{chunks: []string{"ok"}}
	svc := NewChatService(provider, stubLimiter{allowed: true}, 5, nopLogger{})

	big := make([]byte, 100)
	for i := range big {
		big[i] = 'a'
	}

	_, err := svc.PrepareStream(context.Background(), uuid.New(), &dto.StreamChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: string(big)}},
	})

	assert.Equal(t, 413, appErrCode(t, err))
	assert.Zero(t, provider.calls, "model must not be called for oversized prompts")
}

func TestRelayStreamUpstreamFailure(t *testing.T) {
	provider := &stubLLM{err: errors.New("connection reset")}
	svc := NewChatService(provider, stubLimiter{allowed: true}, 1000, nopLogger{})

	err := svc.RelayStream(context.Background(), uuid.New(),
		[]llm.Message{{Role: "user", Content: "Hi"}},
		func(string) error { return nil })

	assert.Equal(t, 500, appErrCode(t, err))
}

func TestRelayStreamMapsUpstream429(t *testing.T) {
	provider := &stubLLM{err: &llm.StatusError{StatusCode: 429, Body: "slow down"}}
	svc := NewChatService(provider, stubLimiter{allowed: true}, 1000, nopLogger{})

	err := svc.RelayStream(context.Background(), uuid.New(),
		[]llm.Message{{Role: "user", Content: "Hi"}},
		func(string) error { return nil })

	assert.Equal(t, 429, appErrCode(t, err))
}

// --- SalaryCoach ---

func TestSalaryCoachBuildsPromptWithDefaults(t *testing.T) {
	provider := &stubLLM{reply: "Ask for more."}
	svc := NewChatService(provider, stubLimiter{allowed: true}, 1000, nopLogger{})

	res, err := svc.SalaryCoach(context.Background(), uuid.New(), &dto.SalaryCoachRequest{
		Role:            "Backend Engineer",
		ExperienceYears: 4,
		Location:        "Berlin",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ask for more.", res.Message)
	assert.Contains(t, provider.prompt, "Backend Engineer")
	assert.Contains(t, provider.prompt, "Berlin")
	assert.Contains(t, provider.prompt, "not disclosed")
}

func TestSalaryCoachRateLimited(t *testing.T) {
	provider := &stubLLM{reply: "x"}
	svc := NewChatService(provider, stubLimiter{allowed: false}, 1000, nopLogger{})

	_, err := svc.SalaryCoach(context.Background(), uuid.New(), &dto.SalaryCoachRequest{Role: "SRE"})

	assert.Equal(t, 429, appErrCode(t, err))
	assert.Zero(t, provider.calls)
}

func TestSalaryCoachMapsUpstream429(t *testing.T) {
	provider := &stubLLM{err: &llm.StatusError{StatusCode: 429, Body: "quota exhausted"}}
	svc := NewChatService(provider, stubLimiter{allowed: true}, 1000, nopLogger{})

	_, err := svc.SalaryCoach(context.Background(), uuid.New(), &dto.SalaryCoachRequest{Role: "SRE"})

	assert.Equal(t, 429, appErrCode(t, err))
}

package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	prepareErr error
	history    []llm.Message
	chunks     []string
	relayErr   error
}

func (s *stubChatService) PrepareStream(ctx context.Context, userId uuid.UUID, req *dto.StreamChatRequest) ([]llm.Message, error) {
	if s.prepareErr != nil {
		return nil, s.prepareErr
	}
	return s.history, nil
}

func (s *stubChatService) RelayStream(ctx context.Context, userId uuid.UUID, history []llm.Message, handler llm.StreamHandler) error {
	for _, c := range s.chunks {
		if err := handler(c); err != nil {
			return err
		}
	}
	return s.relayErr
}

func (s *stubChatService) SalaryCoach(ctx context.Context, userId uuid.UUID, req *dto.SalaryCoachRequest) (*dto.SalaryCoachResponse, error) {
	return &dto.SalaryCoachResponse{Message: "ok"}, nil
}

func newChatTestApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		return c.Next()
	})
	app.Post("/chat/v1/stream", NewChatController(svc).Stream)
	return app
}

func TestStreamRelaysChunkedPlainText(t *testing.T) {
	app := newChatTestApp(&stubChatService{chunks: []string{"Hel", "lo"}})

	req := httptest.NewRequest("POST", "/chat/v1/stream",
		strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(body))
}

func TestStreamRateLimitedBeforeDispatchGets429(t *testing.T) {
	app := newChatTestApp(&stubChatService{prepareErr: serverutils.ErrRateLimited("")})

	req := httptest.NewRequest("POST", "/chat/v1/stream",
		strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Rate limit exceeded, try again later", string(body))
}

func TestStreamOversizedPromptGets413(t *testing.T) {
	app := newChatTestApp(&stubChatService{prepareErr: serverutils.ErrContentTooLarge("")})

	req := httptest.NewRequest("POST", "/chat/v1/stream",
		strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 413, resp.StatusCode)
}

func TestStreamInvalidBodyGets400PlainText(t *testing.T) {
	app := newChatTestApp(&stubChatService{chunks: []string{"never"}})

	req := httptest.NewRequest("POST", "/chat/v1/stream",
		strings.NewReader(`{"messages":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestStreamUpstreamFailureBeforeFirstChunkWritesError(t *testing.T) {
	app := newChatTestApp(&stubChatService{relayErr: serverutils.ErrUpstream("Chat stream failed")})

	req := httptest.NewRequest("POST", "/chat/v1/stream",
		strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Chat stream failed", string(body))
}

func TestStreamMidStreamFailureEndsBodyWithPartialResult(t *testing.T) {
	app := newChatTestApp(&stubChatService{
		chunks:   []string{"partial"},
		relayErr: serverutils.ErrUpstream("connection lost"),
	})

	req := httptest.NewRequest("POST", "/chat/v1/stream",
		strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "partial", string(body), "nothing may be appended after a mid-stream failure")
}

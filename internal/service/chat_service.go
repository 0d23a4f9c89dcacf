package service

import (
	"context"
	"fmt"

	"careerpilot-be/internal/constant"
	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/pkg/logger"
	"careerpilot-be/internal/pkg/ratelimit"
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/pkg/llm"
	"careerpilot-be/pkg/utils"

	"github.com/google/uuid"
)

type IChatService interface {
	// PrepareStream runs the pre-dispatch guards (rate limit, token
	// ceiling) and returns the history to relay, with the career system
	// prompt prepended unless the client supplied its own system turn.
	// Callers must not commit a response status before this succeeds.
	PrepareStream(ctx context.Context, userId uuid.UUID, req *dto.StreamChatRequest) ([]llm.Message, error)

	// RelayStream forwards model output chunk by chunk through the
	// handler in arrival order.
	RelayStream(ctx context.Context, userId uuid.UUID, history []llm.Message, handler llm.StreamHandler) error

	// SalaryCoach is the buffered counterpart: one request, one JSON reply.
	SalaryCoach(ctx context.Context, userId uuid.UUID, req *dto.SalaryCoachRequest) (*dto.SalaryCoachResponse, error)
}

type chatService struct {
	llmProvider      llm.LLMProvider
	limiter          ratelimit.ILimiter
	promptTokenLimit int
	logger           logger.ILogger
}

func NewChatService(
	llmProvider llm.LLMProvider,
	limiter ratelimit.ILimiter,
	promptTokenLimit int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		llmProvider:      llmProvider,
		limiter:          limiter,
		promptTokenLimit: promptTokenLimit,
		logger:           log,
	}
}

// guard runs the shared pre-dispatch checks: rate limit first, then the
// approximate token ceiling over all message bodies.
func (s *chatService) guard(ctx context.Context, userId uuid.UUID, contents []string) error {
	allowed, err := s.limiter.Allow(ctx, userId.String())
	if err != nil {
		s.logger.Error("ChatService", "Rate limiter unavailable", map[string]interface{}{"error": err.Error()})
		return serverutils.ErrUpstream("")
	}
	if !allowed {
		return serverutils.ErrRateLimited("")
	}

	if utils.EstimateMessageTokens(contents...) > s.promptTokenLimit {
		return serverutils.ErrContentTooLarge("")
	}
	return nil
}

func (s *chatService) PrepareStream(ctx context.Context, userId uuid.UUID, req *dto.StreamChatRequest) ([]llm.Message, error) {
	contents := make([]string, len(req.Messages))
	for i, m := range req.Messages {
		contents[i] = m.Content
	}
	if err := s.guard(ctx, userId, contents); err != nil {
		return nil, err
	}

	// Prepend the career framing unless the client already sent a system turn
	history := make([]llm.Message, 0, len(req.Messages)+1)
	if req.Messages[0].Role != constant.ChatMessageRoleSystem {
		history = append(history, llm.Message{
			Role:    constant.ChatMessageRoleSystem,
			Content: constant.CareerChatSystemPromptV1,
		})
	}
	for _, m := range req.Messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history, nil
}

func (s *chatService) RelayStream(ctx context.Context, userId uuid.UUID, history []llm.Message, handler llm.StreamHandler) error {
	if err := s.llmProvider.ChatStream(ctx, history, handler); err != nil {
		// Mid-stream failures surface as an abrupt end on the wire; the
		// caller treats what it already received as a partial result.
		s.logger.Error("ChatService", "Stream relay ended with error", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		if llm.IsRateLimited(err) {
			return serverutils.ErrRateLimited("")
		}
		return serverutils.ErrUpstream("Chat stream failed")
	}
	return nil
}

func (s *chatService) SalaryCoach(ctx context.Context, userId uuid.UUID, req *dto.SalaryCoachRequest) (*dto.SalaryCoachResponse, error) {
	currentOffer := req.CurrentOffer
	if currentOffer == "" {
		currentOffer = "not disclosed"
	}
	additional := req.Context
	if additional == "" {
		additional = "none"
	}

	prompt := fmt.Sprintf(constant.SalaryCoachPromptV1,
		req.Role,
		req.Location,
		req.ExperienceYears,
		currentOffer,
		additional,
	)

	if err := s.guard(ctx, userId, []string{prompt}); err != nil {
		return nil, err
	}

	answer, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.6))
	if err != nil {
		s.logger.Error("ChatService", "Salary coaching failed", map[string]interface{}{"error": err.Error()})
		if llm.IsRateLimited(err) {
			return nil, serverutils.ErrRateLimited("")
		}
		return nil, serverutils.ErrUpstream("Salary coach is unavailable")
	}

	return &dto.SalaryCoachResponse{Message: answer}, nil
}

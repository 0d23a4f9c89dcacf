package service

import (
	"context"
	"fmt"
	"time"

	"careerpilot-be/internal/constant"
	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/pkg/logger"
	"careerpilot-be/internal/pkg/ratelimit"
	"careerpilot-be/internal/pkg/serverutils"
	"careerpilot-be/internal/repository/specification"
	"careerpilot-be/internal/repository/unitofwork"
	"careerpilot-be/pkg/llm"
	"careerpilot-be/pkg/utils"

	"github.com/google/uuid"
)

type IInterviewService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateInterviewSessionRequest) (*dto.InterviewSessionResponse, error)
	ShowSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowInterviewSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.InterviewSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendInterviewMessageRequest) (*dto.SendInterviewMessageResponse, error)
}

type interviewService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	limiter          ratelimit.ILimiter
	promptTokenLimit int
	logger           logger.ILogger
}

func NewInterviewService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	limiter ratelimit.ILimiter,
	promptTokenLimit int,
	log logger.ILogger,
) IInterviewService {
	return &interviewService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		limiter:          limiter,
		promptTokenLimit: promptTokenLimit,
		logger:           log,
	}
}

// CreateSession opens a session, seeds the transcript with the system
// prompt, and asks the model for its opening question.
func (s *interviewService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateInterviewSessionRequest) (*dto.InterviewSessionResponse, error) {
	allowed, err := s.limiter.Allow(ctx, userId.String())
	if err != nil {
		s.logger.Error("InterviewService", "Rate limiter unavailable", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.ErrUpstream("")
	}
	if !allowed {
		return nil, serverutils.ErrRateLimited("")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.InterviewSession{
		Id:        uuid.New(),
		Role:      req.Role,
		Status:    entity.InterviewStatusActive,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	systemPrompt := fmt.Sprintf(constant.InterviewSystemPromptV1, req.Role, "")

	history := []llm.Message{
		{Role: entity.MessageRoleSystem, Content: systemPrompt},
		{Role: entity.MessageRoleUser, Content: constant.InterviewOpeningUserPromptV1},
	}

	opening, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		s.logger.Error("InterviewService", "Opening question generation failed", map[string]interface{}{"error": err.Error()})
		if llm.IsRateLimited(err) {
			return nil, serverutils.ErrRateLimited("")
		}
		return nil, serverutils.ErrUpstream("Interview could not be started")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.InterviewSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	messages := []*entity.InterviewMessage{
		{Id: uuid.New(), SessionId: session.Id, Role: entity.MessageRoleSystem, Content: systemPrompt, CreatedAt: time.Now()},
		{Id: uuid.New(), SessionId: session.Id, Role: entity.MessageRoleAssistant, Content: opening, CreatedAt: time.Now()},
	}
	for _, m := range messages {
		if err := uow.InterviewMessageRepository().Create(ctx, m); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toInterviewSessionResponse(&session), nil
}

func (s *interviewService) ShowSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowInterviewSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.InterviewSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound("Interview session")
	}

	messages, err := uow.InterviewMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowInterviewSessionResponse{
		Id:        session.Id,
		Role:      session.Role,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
	}
	for _, m := range messages {
		// The system prompt is internal scaffolding, not transcript
		if m.Role == entity.MessageRoleSystem {
			continue
		}
		res.Messages = append(res.Messages, dto.InterviewMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	return res, nil
}

func (s *interviewService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.InterviewSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.InterviewSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "COALESCE(updated_at, created_at)", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.InterviewSessionResponse, len(sessions))
	for i, sess := range sessions {
		res[i] = toInterviewSessionResponse(sess)
	}
	return res, nil
}

func (s *interviewService) DeleteSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.InterviewSessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.ErrNotFound("Interview session")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.InterviewMessageRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.InterviewSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	return uow.Commit()
}

// SendMessage appends the candidate's answer to the transcript, replays
// the full history to the model, and persists the interviewer's reply.
func (s *interviewService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendInterviewMessageRequest) (*dto.SendInterviewMessageResponse, error) {
	allowed, err := s.limiter.Allow(ctx, userId.String())
	if err != nil {
		s.logger.Error("InterviewService", "Rate limiter unavailable", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.ErrUpstream("")
	}
	if !allowed {
		return nil, serverutils.ErrRateLimited("")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.InterviewSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.SessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrNotFound("Interview session")
	}
	if session.Status != entity.InterviewStatusActive {
		return nil, serverutils.ErrValidation("Interview session is finished")
	}

	stored, err := uow.InterviewMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(stored)+1)
	var totalContent []string
	for _, m := range stored {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
		totalContent = append(totalContent, m.Content)
	}
	history = append(history, llm.Message{Role: entity.MessageRoleUser, Content: req.Message})
	totalContent = append(totalContent, req.Message)

	if utils.EstimateMessageTokens(totalContent...) > s.promptTokenLimit {
		return nil, serverutils.ErrContentTooLarge("Interview transcript is too long, start a new session")
	}

	reply, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		s.logger.Error("InterviewService", "Interviewer reply failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		if llm.IsRateLimited(err) {
			return nil, serverutils.ErrRateLimited("")
		}
		return nil, serverutils.ErrUpstream("Interviewer is unavailable")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	userMsg := &entity.InterviewMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      entity.MessageRoleUser,
		Content:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := uow.InterviewMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}

	assistantMsg := &entity.InterviewMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      entity.MessageRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := uow.InterviewMessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendInterviewMessageResponse{Message: reply}, nil
}

func toInterviewSessionResponse(s *entity.InterviewSession) *dto.InterviewSessionResponse {
	return &dto.InterviewSessionResponse{
		Id:        s.Id,
		Role:      s.Role,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

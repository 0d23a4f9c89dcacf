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

type ICoverLetterService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCoverLetterRequest) (*dto.CoverLetterResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CoverLetterResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.CoverLetterResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCoverLetterRequest) (*dto.CoverLetterResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateCoverLetterRequest) (*dto.GenerateCoverLetterResponse, error)
}

type coverLetterService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.LLMProvider
	limiter          ratelimit.ILimiter
	promptTokenLimit int
	logger           logger.ILogger
}

func NewCoverLetterService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	limiter ratelimit.ILimiter,
	promptTokenLimit int,
	log logger.ILogger,
) ICoverLetterService {
	return &coverLetterService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		limiter:          limiter,
		promptTokenLimit: promptTokenLimit,
		logger:           log,
	}
}

func (s *coverLetterService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCoverLetterRequest) (*dto.CoverLetterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	letter := entity.CoverLetter{
		Id:          uuid.New(),
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		Content:     req.Content,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.CoverLetterRepository().Create(ctx, &letter); err != nil {
		return nil, err
	}

	return toCoverLetterResponse(&letter), nil
}

func (s *coverLetterService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CoverLetterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	letter, err := uow.CoverLetterRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if letter == nil {
		return nil, serverutils.ErrNotFound("Cover letter")
	}

	return toCoverLetterResponse(letter), nil
}

func (s *coverLetterService) List(ctx context.Context, userId uuid.UUID) ([]*dto.CoverLetterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	letters, err := uow.CoverLetterRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "COALESCE(updated_at, created_at)", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CoverLetterResponse, len(letters))
	for i, l := range letters {
		res[i] = toCoverLetterResponse(l)
	}
	return res, nil
}

func (s *coverLetterService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCoverLetterRequest) (*dto.CoverLetterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	letter, err := uow.CoverLetterRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if letter == nil {
		return nil, serverutils.ErrNotFound("Cover letter")
	}

	letter.JobTitle = req.JobTitle
	letter.CompanyName = req.CompanyName
	letter.Content = req.Content
	now := time.Now()
	letter.UpdatedAt = &now

	if err := uow.CoverLetterRepository().Update(ctx, letter); err != nil {
		return nil, err
	}

	return toCoverLetterResponse(letter), nil
}

func (s *coverLetterService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	letter, err := uow.CoverLetterRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if letter == nil {
		return serverutils.ErrNotFound("Cover letter")
	}

	return uow.CoverLetterRepository().Delete(ctx, letter.Id)
}

// Generate composes the prompt, guards it against the token ceiling and
// the per-user rate limit, then asks the model for a draft. The draft is
// returned to the caller unsaved; saving is an explicit Create.
func (s *coverLetterService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateCoverLetterRequest) (*dto.GenerateCoverLetterResponse, error) {
	allowed, err := s.limiter.Allow(ctx, userId.String())
	if err != nil {
		s.logger.Error("CoverLetterService", "Rate limiter unavailable", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.ErrUpstream("")
	}
	if !allowed {
		return nil, serverutils.ErrRateLimited("")
	}

	resumeContext := ""
	if req.ResumeId != uuid.Nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		resume, err := uow.ResumeRepository().FindOne(ctx,
			specification.ByID{ID: req.ResumeId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if resume == nil {
			return nil, serverutils.ErrNotFound("Resume")
		}
		resumeContext = fmt.Sprintf("Candidate's resume:\n%s\n", resume.Content)
	}

	prompt := fmt.Sprintf(constant.CoverLetterPromptV1,
		req.JobTitle,
		req.CompanyName,
		req.JobDescription,
		req.KeySkills,
		resumeContext,
	)

	// Guard before dispatch: reject instead of paying for an oversized call
	if utils.EstimateTokens(prompt) > s.promptTokenLimit {
		return nil, serverutils.ErrContentTooLarge("")
	}

	draft, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.8))
	if err != nil {
		s.logger.Error("CoverLetterService", "Cover letter generation failed", map[string]interface{}{"error": err.Error()})
		if llm.IsRateLimited(err) {
			return nil, serverutils.ErrRateLimited("")
		}
		return nil, serverutils.ErrUpstream("Cover letter generation failed")
	}

	return &dto.GenerateCoverLetterResponse{CoverLetter: draft}, nil
}

func toCoverLetterResponse(l *entity.CoverLetter) *dto.CoverLetterResponse {
	return &dto.CoverLetterResponse{
		Id:          l.Id,
		JobTitle:    l.JobTitle,
		CompanyName: l.CompanyName,
		Content:     l.Content,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

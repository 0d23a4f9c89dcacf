package contract

import (
	"context"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InterviewSessionRepository interface {
	Create(ctx context.Context, session *entity.InterviewSession) error
	Update(ctx context.Context, session *entity.InterviewSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InterviewSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type InterviewMessageRepository interface {
	Create(ctx context.Context, message *entity.InterviewMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewMessage, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}

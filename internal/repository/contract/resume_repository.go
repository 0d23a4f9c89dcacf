package contract

import (
	"context"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *entity.Resume) error
	Update(ctx context.Context, resume *entity.Resume) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resume, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resume, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	ClearPrimaryForUser(ctx context.Context, userId uuid.UUID) error
}

type ResumeEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ResumeEmbedding) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeEmbedding, error)
	DeleteByResumeId(ctx context.Context, resumeId uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

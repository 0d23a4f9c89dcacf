package contract

import (
	"context"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CoverLetterRepository interface {
	Create(ctx context.Context, letter *entity.CoverLetter) error
	Update(ctx context.Context, letter *entity.CoverLetter) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CoverLetter, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CoverLetter, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

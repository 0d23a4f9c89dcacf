package implementation

import (
	"context"
	"errors"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/mapper"
	"careerpilot-be/internal/model"
	"careerpilot-be/internal/repository/contract"
	"careerpilot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResumeEmbeddingMapper
}

func NewResumeEmbeddingRepository(db *gorm.DB) contract.ResumeEmbeddingRepository {
	return &ResumeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewResumeEmbeddingMapper(),
	}
}

func (r *ResumeEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResumeEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ResumeEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResumeEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeEmbedding, error) {
	var m model.ResumeEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ResumeEmbeddingRepositoryImpl) DeleteByResumeId(ctx context.Context, resumeId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("resume_id = ?", resumeId).
		Delete(&model.ResumeEmbedding{}).Error
}

func (r *ResumeEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ResumeEmbedding{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

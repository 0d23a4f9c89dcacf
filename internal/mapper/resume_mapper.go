package mapper

import (
	"time"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResumeMapper struct{}

func NewResumeMapper() *ResumeMapper {
	return &ResumeMapper{}
}

func (m *ResumeMapper) ToEntity(r *model.Resume) *entity.Resume {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Resume{
		Id:        r.Id,
		Title:     r.Title,
		Content:   r.Content,
		Sections:  []byte(r.Sections),
		IsPrimary: r.IsPrimary,
		UserId:    r.UserId,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: r.DeletedAt.Valid,
	}
}

func (m *ResumeMapper) ToModel(r *entity.Resume) *model.Resume {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Resume{
		Id:        r.Id,
		Title:     r.Title,
		Content:   r.Content,
		Sections:  datatypes.JSON(r.Sections),
		IsPrimary: r.IsPrimary,
		UserId:    r.UserId,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ResumeMapper) ToEntities(resumes []*model.Resume) []*entity.Resume {
	entities := make([]*entity.Resume, len(resumes))
	for i, r := range resumes {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

type ResumeEmbeddingMapper struct{}

func NewResumeEmbeddingMapper() *ResumeEmbeddingMapper {
	return &ResumeEmbeddingMapper{}
}

func (m *ResumeEmbeddingMapper) ToEntity(e *model.ResumeEmbedding) *entity.ResumeEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ResumeEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ResumeId:       e.ResumeId,
		UserId:         e.UserId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ResumeEmbeddingMapper) ToModel(e *entity.ResumeEmbedding) *model.ResumeEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.ResumeEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ResumeId:       e.ResumeId,
		UserId:         e.UserId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ResumeEmbeddingMapper) ToEntities(embeddings []*model.ResumeEmbedding) []*entity.ResumeEmbedding {
	entities := make([]*entity.ResumeEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

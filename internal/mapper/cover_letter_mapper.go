package mapper

import (
	"time"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/model"

	"gorm.io/gorm"
)

type CoverLetterMapper struct{}

func NewCoverLetterMapper() *CoverLetterMapper {
	return &CoverLetterMapper{}
}

func (m *CoverLetterMapper) ToEntity(c *model.CoverLetter) *entity.CoverLetter {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.CoverLetter{
		Id:          c.Id,
		JobTitle:    c.JobTitle,
		CompanyName: c.CompanyName,
		Content:     c.Content,
		UserId:      c.UserId,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   c.DeletedAt.Valid,
	}
}

func (m *CoverLetterMapper) ToModel(c *entity.CoverLetter) *model.CoverLetter {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.CoverLetter{
		Id:          c.Id,
		JobTitle:    c.JobTitle,
		CompanyName: c.CompanyName,
		Content:     c.Content,
		UserId:      c.UserId,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *CoverLetterMapper) ToEntities(letters []*model.CoverLetter) []*entity.CoverLetter {
	entities := make([]*entity.CoverLetter, len(letters))
	for i, c := range letters {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

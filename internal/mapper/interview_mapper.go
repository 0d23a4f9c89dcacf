package mapper

import (
	"time"

	"careerpilot-be/internal/entity"
	"careerpilot-be/internal/model"

	"gorm.io/gorm"
)

type InterviewSessionMapper struct{}

func NewInterviewSessionMapper() *InterviewSessionMapper {
	return &InterviewSessionMapper{}
}

func (m *InterviewSessionMapper) ToEntity(s *model.InterviewSession) *entity.InterviewSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.InterviewSession{
		Id:        s.Id,
		Role:      s.Role,
		Status:    s.Status,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *InterviewSessionMapper) ToModel(s *entity.InterviewSession) *model.InterviewSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.InterviewSession{
		Id:        s.Id,
		Role:      s.Role,
		Status:    s.Status,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *InterviewSessionMapper) ToEntities(sessions []*model.InterviewSession) []*entity.InterviewSession {
	entities := make([]*entity.InterviewSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type InterviewMessageMapper struct{}

func NewInterviewMessageMapper() *InterviewMessageMapper {
	return &InterviewMessageMapper{}
}

func (m *InterviewMessageMapper) ToEntity(msg *model.InterviewMessage) *entity.InterviewMessage {
	if msg == nil {
		return nil
	}
	return &entity.InterviewMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *InterviewMessageMapper) ToModel(msg *entity.InterviewMessage) *model.InterviewMessage {
	if msg == nil {
		return nil
	}
	return &model.InterviewMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *InterviewMessageMapper) ToEntities(messages []*model.InterviewMessage) []*entity.InterviewMessage {
	entities := make([]*entity.InterviewMessage, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

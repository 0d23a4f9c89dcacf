package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	InterviewStatusActive   = "active"
	InterviewStatusFinished = "finished"

	MessageRoleSystem    = "system"
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

type InterviewSession struct {
	Id        uuid.UUID
	Role      string // target job role
	Status    string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// InterviewMessage entries form an ordered transcript; the system prompt
// is always replayed first when the history is sent to the model.
type InterviewMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

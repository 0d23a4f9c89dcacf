package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInterviewSessionRequest struct {
	Role string `json:"role" validate:"required"`
}

type InterviewSessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type InterviewMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowInterviewSessionResponse struct {
	Id        uuid.UUID                  `json:"id"`
	Role      string                     `json:"role"`
	Status    string                     `json:"status"`
	Messages  []InterviewMessageResponse `json:"messages"`
	CreatedAt time.Time                  `json:"created_at"`
}

type SendInterviewMessageRequest struct {
	SessionId uuid.UUID `json:"-"`
	Message   string    `json:"message" validate:"required"`
}

type SendInterviewMessageResponse struct {
	Message string `json:"message"`
}

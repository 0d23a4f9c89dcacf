package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Headline   *string   `json:"headline"`
	TargetRole *string   `json:"target_role"`
	AvatarURL  *string   `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName   string  `json:"full_name" validate:"required"`
	Headline   *string `json:"headline"`
	TargetRole *string `json:"target_role"`
}

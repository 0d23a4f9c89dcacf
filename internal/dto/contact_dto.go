package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"omitempty,email"`
	Company           string `json:"company"`
	Role              string `json:"role"`
	Notes             string `json:"notes"`
	RelationshipScore *int   `json:"relationship_score" validate:"omitempty,min=0,max=100"`
}

type UpdateContactRequest struct {
	Id                uuid.UUID `json:"-"`
	Name              string    `json:"name" validate:"required"`
	Email             string    `json:"email" validate:"omitempty,email"`
	Company           string    `json:"company"`
	Role              string    `json:"role"`
	Notes             string    `json:"notes"`
	RelationshipScore *int      `json:"relationship_score" validate:"omitempty,min=0,max=100"`
}

type ContactResponse struct {
	Id                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Company           string     `json:"company"`
	Role              string     `json:"role"`
	Notes             string     `json:"notes"`
	RelationshipScore int        `json:"relationship_score"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

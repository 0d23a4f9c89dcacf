package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCoverLetterRequest struct {
	JobTitle    string `json:"job_title" validate:"required"`
	CompanyName string `json:"company_name"`
	Content     string `json:"content"`
}

type UpdateCoverLetterRequest struct {
	Id          uuid.UUID `json:"-"`
	JobTitle    string    `json:"job_title" validate:"required"`
	CompanyName string    `json:"company_name"`
	Content     string    `json:"content"`
}

type CoverLetterResponse struct {
	Id          uuid.UUID  `json:"id"`
	JobTitle    string     `json:"job_title"`
	CompanyName string     `json:"company_name"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type GenerateCoverLetterRequest struct {
	JobTitle       string    `json:"job_title" validate:"required"`
	CompanyName    string    `json:"company_name" validate:"required"`
	JobDescription string    `json:"job_description" validate:"required"`
	KeySkills      string    `json:"key_skills"`
	ResumeId       uuid.UUID `json:"resume_id"`
}

type GenerateCoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

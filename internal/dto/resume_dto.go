package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateResumeRequest struct {
	Title     string          `json:"title" validate:"required"`
	Content   string          `json:"content"`
	Sections  json.RawMessage `json:"sections"`
	IsPrimary bool            `json:"is_primary"`
}

type UpdateResumeRequest struct {
	Id        uuid.UUID       `json:"-"`
	Title     string          `json:"title" validate:"required"`
	Content   string          `json:"content"`
	Sections  json.RawMessage `json:"sections"`
	IsPrimary bool            `json:"is_primary"`
}

type ResumeResponse struct {
	Id        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Sections  json.RawMessage `json:"sections,omitempty"`
	IsPrimary bool            `json:"is_primary"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
}

type MatchResumeRequest struct {
	Id             uuid.UUID `json:"-"`
	JobDescription string    `json:"job_description" validate:"required"`
}

type MatchResumeResponse struct {
	ResumeId uuid.UUID `json:"resume_id"`
	Score    float64   `json:"score"` // cosine similarity in [0,1]
}

// PublishIngestResumeMessage flows over the watermill pipeline from the
// resume service to the ingestion worker.
type PublishIngestResumeMessage struct {
	ResumeId uuid.UUID `json:"resume_id"`
}

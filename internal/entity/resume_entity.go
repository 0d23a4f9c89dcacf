package entity

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Sections  []byte // raw JSON document of structured sections
	IsPrimary bool
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type ResumeEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	ResumeId       uuid.UUID
	UserId         uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

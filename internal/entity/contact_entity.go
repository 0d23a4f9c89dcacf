package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRelationshipScore is assigned to new contacts that don't
// specify a score.
const DefaultRelationshipScore = 50

type Contact struct {
	Id                uuid.UUID
	Name              string
	Email             string
	Company           string
	Role              string
	Notes             string
	RelationshipScore int
	UserId            uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}

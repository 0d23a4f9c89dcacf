package entity

import (
	"time"

	"github.com/google/uuid"
)

type CoverLetter struct {
	Id          uuid.UUID
	JobTitle    string
	CompanyName string
	Content     string
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

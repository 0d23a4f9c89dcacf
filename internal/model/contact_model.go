package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Email             string    `gorm:"type:varchar(255)"`
	Company           string    `gorm:"type:varchar(255)"`
	Role              string    `gorm:"type:varchar(255)"`
	Notes             string    `gorm:"type:text"`
	RelationshipScore int       `gorm:"default:50"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}

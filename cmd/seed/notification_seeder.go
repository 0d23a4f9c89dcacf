package main

import (
	"log"

	"careerpilot-be/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in from {device} at {time}",
			IsActive:    true,
		},
		{
			Code:        "RESUME_ANALYZED",
			DisplayName: "Resume Analyzed",
			Template:    "Your resume \"{title}\" has been analyzed and is ready for matching",
			IsActive:    true,
		},
		{
			Code:        "RESUME_MATCHED",
			DisplayName: "Resume Matched",
			Template:    "Your resume \"{title}\" was matched against a job description",
			IsActive:    true,
		},
	}

	for _, t := range types {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "template", "is_active"}),
		}).Create(&t).Error
		if err != nil {
			log.Printf("Warn: Failed to seed notification type %s: %v", t.Code, err)
			continue
		}
		log.Printf("Seeded notification type: %s", t.Code)
	}
}

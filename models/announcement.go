package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is a team-scoped notice. UpdatedAt equals CreatedAt until the
// first edit; display order is always CreatedAt descending.
type Announcement struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	TeamID    string    `gorm:"not null;index" json:"teamId"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedBy string    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

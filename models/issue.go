package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Issue workflow states
const (
	IssueStatusOpen       = "open"
	IssueStatusInProgress = "in-progress"
	IssueStatusResolved   = "resolved"
)

// Issue is a team-scoped work item. Status is the only field that changes
// independently of content edits; edit and delete stay with the creator.
// Creator checks go through CreatedByID, not CreatedBy: display names are
// not unique within a team.
type Issue struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	TeamID      string    `gorm:"not null;index" json:"teamId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Status      string    `gorm:"not null;default:'open'" json:"status"` // open, in-progress, resolved
	CreatedBy   string    `gorm:"not null" json:"createdBy"`
	CreatedByID string    `gorm:"not null;index" json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

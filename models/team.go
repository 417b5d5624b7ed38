package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team is a bounded collaboration group with one leader and a capacity limit.
// Immutable after creation.
type Team struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	MaxMembers int       `gorm:"not null" json:"maxMembers"`
	LeaderID   string    `gorm:"not null" json:"leaderId"`
	LeaderName string    `gorm:"not null" json:"leaderName"`
	CreatedAt  time.Time `json:"createdAt"`

	// Relations
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TeamMember is a user's membership row within a team. Role is free-form and
// editable by team management; everything else is fixed at join time. UserID
// ties the row to its login account so removal can find the account even
// when two members share a display name.
type TeamMember struct {
	ID       string    `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"not null;index" json:"userId"`
	Name     string    `gorm:"not null" json:"name"`
	TeamID   string    `gorm:"not null;index" json:"teamId"`
	Role     string    `gorm:"not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

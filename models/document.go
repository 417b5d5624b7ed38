package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is one uploaded revision of a team file. Rows are append-only: a
// re-upload under the same title inserts a new row at the next version and
// flips the previous latest off. The unique index makes a duplicate version
// for a (team, title) pair a constraint violation rather than silent data
// corruption when two uploads race.
type Document struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	TeamID      string    `gorm:"not null;uniqueIndex:idx_documents_team_title_version" json:"teamId"`
	Title       string    `gorm:"not null;uniqueIndex:idx_documents_team_title_version" json:"title"`
	Description string    `json:"description,omitempty"`
	FilePath    string    `gorm:"not null" json:"filePath"`
	FileName    string    `gorm:"not null" json:"fileName"`
	FileSize    int64     `gorm:"not null" json:"fileSize"`
	MimeType    string    `gorm:"not null" json:"mimeType"`
	Version     int       `gorm:"not null;default:1;uniqueIndex:idx_documents_team_title_version" json:"version"`
	UploadedBy  string    `gorm:"not null" json:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	IsLatest    bool      `gorm:"not null;default:true" json:"isLatest"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

package models

// User account types
const (
	UserTypeLeader = "leader"
	UserTypeMember = "member"
)

// User represents a login identity. The ID is a short generated string the
// user types to log back in, so it has to stay human-transcribable.
type User struct {
	ID     string  `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"not null" json:"name"`
	Type   string  `gorm:"not null" json:"type"` // leader, member
	TeamID *string `gorm:"index" json:"teamId,omitempty"`
}

// IsLeader reports whether the user created their team.
func (u *User) IsLeader() bool {
	return u.Type == UserTypeLeader
}

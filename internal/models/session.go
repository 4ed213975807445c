package models

import (
	"time"
)

// Session tracks one continuous period of user engagement, opened at login
// and closed at logout. EndedAt stays nil while the session is open and is
// set exactly once on close.
type Session struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Open reports whether the session has not been closed yet.
func (s *Session) Open() bool {
	return s.EndedAt == nil
}

package models

import (
	"time"
)

// ChatMessage is one exchange turn pair: the user's text and the generated
// reply. Response is nil only for rows created outside the normal send path
// (a failed generation never writes a row); such rows are never surfaced as
// a successful exchange. SessionID is nil when no session was open at send
// time, which is accepted and leaves the message orphaned.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	SessionID *uint     `gorm:"index" json:"session_id,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  *string   `gorm:"type:text" json:"response,omitempty"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

// SendMessageRequest is the inbound chat submission payload
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// TranscriptTurn is a single display turn in a replayed conversation
type TranscriptTurn struct {
	Sender string `json:"sender"` // "user" or "bot"
	Text   string `json:"text"`
}

// Conversation is a renderable transcript of exactly one session's messages
type Conversation struct {
	SessionID *uint            `json:"session_id"`
	Turns     []TranscriptTurn `json:"messages"`
}

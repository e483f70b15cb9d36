package models

import "time"

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Message is one entry of a session's append-only chat log.
type Message struct {
	Role      MessageRole `bson:"role" json:"role"`
	Content   string      `bson:"content" json:"content"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
}

// Session correlates the chat turns of one visitor.
type Session struct {
	SessionID string                 `bson:"sessionId" json:"sessionId"`
	UserID    string                 `bson:"userId,omitempty" json:"userId,omitempty"`
	UserName  string                 `bson:"userName,omitempty" json:"userName,omitempty"`
	PetName   string                 `bson:"petName,omitempty" json:"petName,omitempty"`
	Source    string                 `bson:"source,omitempty" json:"source,omitempty"`
	Context   map[string]interface{} `bson:"context" json:"context,omitempty"`
	Messages  []Message              `bson:"messages" json:"messages,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// SessionInput carries the optional visitor profile sent by the widget.
type SessionInput struct {
	UserID   string                 `json:"userId"`
	UserName string                 `json:"userName"`
	PetName  string                 `json:"petName"`
	Source   string                 `json:"source"`
	Context  map[string]interface{} `json:"context"`
}

// IsEmpty reports whether the input would change nothing on a session.
func (in SessionInput) IsEmpty() bool {
	return in.UserID == "" && in.UserName == "" && in.PetName == "" && in.Source == "" && len(in.Context) == 0
}

// SessionSummary is the session view without its message log.
type SessionSummary struct {
	SessionID    string    `json:"sessionId"`
	UserID       string    `json:"userId,omitempty"`
	UserName     string    `json:"userName,omitempty"`
	PetName      string    `json:"petName,omitempty"`
	Source       string    `json:"source,omitempty"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary drops the message log.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		SessionID:    s.SessionID,
		UserID:       s.UserID,
		UserName:     s.UserName,
		PetName:      s.PetName,
		Source:       s.Source,
		MessageCount: len(s.Messages),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

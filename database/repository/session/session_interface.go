package sessionRepo

import (
	"context"
	"errors"

	"vetchat/models"
)

// ErrNotFound is returned when no session carries the requested id.
var ErrNotFound = errors.New("session not found")

// SessionRepository defines data access for chat sessions and their message logs.
type SessionRepository interface {
	// Create inserts a new session document.
	Create(ctx context.Context, session *models.Session) error
	// GetBySessionID retrieves a session with its full message log.
	GetBySessionID(ctx context.Context, sessionID string) (*models.Session, error)
	// UpdateProfile merges the non-empty fields of input into the session.
	UpdateProfile(ctx context.Context, sessionID string, input models.SessionInput) (*models.Session, error)
	// AppendMessage pushes one message onto the session's log.
	AppendMessage(ctx context.Context, sessionID string, msg models.Message) error
	// GetMessages returns the last limit messages, oldest first.
	GetMessages(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
	// GetByUserID lists a user's sessions, newest first, without messages.
	GetByUserID(ctx context.Context, userID string, limit int) ([]models.Session, error)
	// Delete removes a session by id.
	Delete(ctx context.Context, sessionID string) error
}

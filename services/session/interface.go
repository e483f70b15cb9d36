package session

import (
	"context"

	sessionRepo "vetchat/database/repository/session"
	"vetchat/models"
)

// ErrNotFound is returned for operations on an unknown session id.
var ErrNotFound = sessionRepo.ErrNotFound

const (
	DefaultMessageLimit = 50
	DefaultUserLimit    = 20
)

type SessionService interface {
	CreateSession(ctx context.Context, input models.SessionInput) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID string, input *models.SessionInput) (*models.Session, error)
	AddMessage(ctx context.Context, sessionID string, role models.MessageRole, content string) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
	GetSessionsByUserID(ctx context.Context, userID string, limit int) ([]models.SessionSummary, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Repo sessionRepo.SessionRepository
	// NewID is overridable in tests.
	NewID func() string
}

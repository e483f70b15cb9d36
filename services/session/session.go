package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetchat/models"

	"github.com/google/uuid"
)

func (s *DefaultSessionService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.New().String()
}

// CreateSession starts a session with a fresh id and an empty message log.
func (s *DefaultSessionService) CreateSession(ctx context.Context, input models.SessionInput) (*models.Session, error) {
	ctxMap := input.Context
	if ctxMap == nil {
		ctxMap = map[string]interface{}{}
	}
	sess := &models.Session{
		SessionID: s.newID(),
		UserID:    input.UserID,
		UserName:  input.UserName,
		PetName:   input.PetName,
		Source:    input.Source,
		Context:   ctxMap,
		Messages:  []models.Message{},
	}
	if err := s.Repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.Repo.GetBySessionID(ctx, sessionID)
}

// GetOrCreateSession returns the session for sessionID, merging input into it
// when given. An empty or unknown id starts a new session with a new id.
func (s *DefaultSessionService) GetOrCreateSession(ctx context.Context, sessionID string, input *models.SessionInput) (*models.Session, error) {
	if sessionID != "" {
		existing, err := s.Repo.GetBySessionID(ctx, sessionID)
		switch {
		case err == nil:
			if input == nil || input.IsEmpty() {
				return existing, nil
			}
			return s.Repo.UpdateProfile(ctx, sessionID, *input)
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("lookup session: %w", err)
		}
	}

	var in models.SessionInput
	if input != nil {
		in = *input
	}
	return s.CreateSession(ctx, in)
}

// AddMessage appends one timestamped message to the session's log.
func (s *DefaultSessionService) AddMessage(ctx context.Context, sessionID string, role models.MessageRole, content string) error {
	return s.Repo.AppendMessage(ctx, sessionID, models.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// GetMessages returns the last limit messages. An unknown session has none.
func (s *DefaultSessionService) GetMessages(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	msgs, err := s.Repo.GetMessages(ctx, sessionID, limit)
	if errors.Is(err, ErrNotFound) {
		return []models.Message{}, nil
	}
	return msgs, err
}

func (s *DefaultSessionService) GetSessionsByUserID(ctx context.Context, userID string, limit int) ([]models.SessionSummary, error) {
	if limit <= 0 {
		limit = DefaultUserLimit
	}
	sessions, err := s.Repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.SessionSummary, 0, len(sessions))
	for i := range sessions {
		summaries = append(summaries, sessions[i].Summary())
	}
	return summaries, nil
}

func (s *DefaultSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.Repo.Delete(ctx, sessionID)
}

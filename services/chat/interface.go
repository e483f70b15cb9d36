package chat

import (
	"context"

	"vetchat/models"
	"vetchat/services/appointment"
	"vetchat/services/bookingflow"
	"vetchat/services/intelligence"
	"vetchat/services/session"
)

const (
	msgGeneratorUnavailable = "I'm sorry, but I'm having trouble connecting to my knowledge base right now. Please try again later or contact support."
	msgGeneratorFailed      = "I apologize, but I'm experiencing technical difficulties. Please try again in a moment."
	msgStorageFailed        = "I'm sorry, something went wrong on our side. Please send your message again in a moment."
	msgBookingSaveFailed    = "I'm sorry, we couldn't save your appointment right now. Please reply \"yes\" to try again."

	defaultHistoryLimit = 10
)

type ChatService interface {
	SendMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResult, error)
	GetHistory(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
	ResetAppointment(ctx context.Context, sessionID string) error
}

// DefaultChatService routes each turn either into the booking flow or to the
// text generator. Generator may be nil when no API key is configured.
type DefaultChatService struct {
	Sessions     session.SessionService
	Appointments appointment.AppointmentService
	Generator    intelligence.Generator
	States       bookingflow.StateStore
	Locker       *bookingflow.SessionLocker
	HistoryLimit int
}

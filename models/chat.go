package models

// ChatIntent tells the widget which path produced a reply.
type ChatIntent string

const (
	IntentGeneral            ChatIntent = "general"
	IntentAppointmentBooking ChatIntent = "appointment_booking"
)

// ChatRequest is the payload of POST /api/chat/message.
type ChatRequest struct {
	SessionID string        `json:"sessionId"`
	Message   string        `json:"message" binding:"required,min=1,max=2000"`
	Context   *SessionInput `json:"context"`
}

// ChatResult is the reply to one chat turn.
type ChatResult struct {
	SessionID         string       `json:"sessionId"`
	Message           string       `json:"message"`
	Intent            ChatIntent   `json:"intent"`
	IsAppointmentFlow bool         `json:"isAppointmentFlow"`
	AppointmentStep   string       `json:"appointmentStep,omitempty"`
	Appointment       *Appointment `json:"appointment,omitempty"`
}

package handlers

import (
	"vetchat/services/appointment"
	"vetchat/services/chat"
	"vetchat/services/session"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// AdminJWTSecret guards appointment management when non-empty.
	AdminJWTSecret string

	HealthHandler gin.HandlerFunc

	// Chat endpoints
	SendMessageHandler      gin.HandlerFunc
	ChatHistoryHandler      gin.HandlerFunc
	ResetAppointmentHandler gin.HandlerFunc

	// Session endpoints
	CreateSessionHandler     gin.HandlerFunc
	GetSessionHandler        gin.HandlerFunc
	GetSessionsByUserHandler gin.HandlerFunc
	DeleteSessionHandler     gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler     gin.HandlerFunc
	ListAppointmentsHandler      gin.HandlerFunc
	UpcomingAppointmentsHandler  gin.HandlerFunc
	AppointmentsBySessionHandler gin.HandlerFunc
	AppointmentsByPhoneHandler   gin.HandlerFunc
	GetAppointmentHandler        gin.HandlerFunc
	UpdateAppointmentHandler     gin.HandlerFunc
	CancelAppointmentHandler     gin.HandlerFunc
	DeleteAppointmentHandler     gin.HandlerFunc
}

func NewHandlerBundle(
	chatSvc chat.ChatService,
	sessionSvc session.SessionService,
	appointmentSvc appointment.AppointmentService,
	adminJWTSecret string,
) *HandlerBundle {
	ch := NewChatHandler(chatSvc)
	sh := NewSessionHandler(sessionSvc)
	ah := NewAppointmentHandler(appointmentSvc)

	return &HandlerBundle{
		AdminJWTSecret: adminJWTSecret,
		HealthHandler:  HealthHandler(utils.GetHealthStatus),

		SendMessageHandler:      ch.SendMessageHandler,
		ChatHistoryHandler:      ch.ChatHistoryHandler,
		ResetAppointmentHandler: ch.ResetAppointmentHandler,

		CreateSessionHandler:     sh.CreateSessionHandler,
		GetSessionHandler:        sh.GetSessionHandler,
		GetSessionsByUserHandler: sh.GetSessionsByUserHandler,
		DeleteSessionHandler:     sh.DeleteSessionHandler,

		CreateAppointmentHandler:     ah.CreateAppointmentHandler,
		ListAppointmentsHandler:      ah.ListAppointmentsHandler,
		UpcomingAppointmentsHandler:  ah.UpcomingAppointmentsHandler,
		AppointmentsBySessionHandler: ah.AppointmentsBySessionHandler,
		AppointmentsByPhoneHandler:   ah.AppointmentsByPhoneHandler,
		GetAppointmentHandler:        ah.GetAppointmentHandler,
		UpdateAppointmentHandler:     ah.UpdateAppointmentHandler,
		CancelAppointmentHandler:     ah.CancelAppointmentHandler,
		DeleteAppointmentHandler:     ah.DeleteAppointmentHandler,
	}
}

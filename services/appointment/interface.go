package appointment

import (
	"context"
	"errors"
	"time"

	appointmentRepo "vetchat/database/repository/appointment"
	"vetchat/models"
	"vetchat/services/tasks"
)

var (
	// ErrNotFound is returned for operations on an unknown appointment id.
	ErrNotFound      = appointmentRepo.ErrNotFound
	ErrInvalidStatus = errors.New("invalid appointment status")
)

const DefaultUpcomingLimit = 10

type AppointmentService interface {
	CreateAppointment(ctx context.Context, input models.AppointmentInput) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	GetAppointmentsBySession(ctx context.Context, sessionID string) ([]models.Appointment, error)
	GetAppointmentsByPhone(ctx context.Context, phone string) ([]models.Appointment, error)
	GetAllAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int64, error)
	UpdateAppointment(ctx context.Context, id string, update models.AppointmentUpdate) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	GetUpcomingAppointments(ctx context.Context, limit int) ([]models.Appointment, error)
}

// DefaultAppointmentService is the production implementation.
// Reminders is optional; without it no reminder is queued.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	Reminders tasks.ReminderScheduler
	Now       func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

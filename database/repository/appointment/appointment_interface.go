package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"vetchat/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no appointment carries the requested id.
var ErrNotFound = errors.New("appointment not found")

// AppointmentRepository defines data access for booked visits.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// GetBySessionID lists a session's appointments, newest first.
	GetBySessionID(ctx context.Context, sessionID string) ([]models.Appointment, error)
	// GetByPhone lists appointments for a phone number, latest visit first.
	GetByPhone(ctx context.Context, phone string) ([]models.Appointment, error)
	// List applies the filter and returns one page plus the total match count.
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int64, error)
	// Upcoming returns pending or confirmed visits at or after now, soonest first.
	Upcoming(ctx context.Context, now time.Time, limit int) ([]models.Appointment, error)
	// Update applies a $set of fields and returns the updated document.
	Update(ctx context.Context, id string, fields bson.M) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

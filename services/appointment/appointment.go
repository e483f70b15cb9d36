package appointment

import (
	"context"
	"strings"

	"vetchat/models"
	"vetchat/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateAppointment stores a pending appointment. The preferred date-time is
// parsed when possible; the raw text is always kept.
func (s *DefaultAppointmentService) CreateAppointment(ctx context.Context, input models.AppointmentInput) (*models.Appointment, error) {
	raw := strings.TrimSpace(input.PreferredDateTime)
	appt := &models.Appointment{
		SessionID:             input.SessionID,
		OwnerName:             strings.TrimSpace(input.OwnerName),
		PetName:               strings.TrimSpace(input.PetName),
		Phone:                 strings.TrimSpace(input.Phone),
		PreferredDateTimeText: raw,
		Reason:                input.Reason,
		Status:                models.AppointmentPending,
	}
	if t, ok := ParsePreferredDateTime(raw, s.now()); ok {
		appt.PreferredDateTime = &t
	}

	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
			utils.GetLogger().Warn("Failed to schedule appointment reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
	return appt, nil
}

func (s *DefaultAppointmentService) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultAppointmentService) GetAppointmentsBySession(ctx context.Context, sessionID string) ([]models.Appointment, error) {
	return s.Repo.GetBySessionID(ctx, sessionID)
}

func (s *DefaultAppointmentService) GetAppointmentsByPhone(ctx context.Context, phone string) ([]models.Appointment, error) {
	return s.Repo.GetByPhone(ctx, strings.TrimSpace(phone))
}

func (s *DefaultAppointmentService) GetAllAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.Repo.List(ctx, filter)
}

// UpdateAppointment applies the non-nil fields of update.
func (s *DefaultAppointmentService) UpdateAppointment(ctx context.Context, id string, update models.AppointmentUpdate) (*models.Appointment, error) {
	fields, err := s.updateFields(update)
	if err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, id, fields)
}

func (s *DefaultAppointmentService) updateFields(u models.AppointmentUpdate) (bson.M, error) {
	fields := bson.M{}
	if u.OwnerName != nil && strings.TrimSpace(*u.OwnerName) != "" {
		fields["ownerName"] = strings.TrimSpace(*u.OwnerName)
	}
	if u.PetName != nil && strings.TrimSpace(*u.PetName) != "" {
		fields["petName"] = strings.TrimSpace(*u.PetName)
	}
	if u.Phone != nil && strings.TrimSpace(*u.Phone) != "" {
		fields["phone"] = strings.TrimSpace(*u.Phone)
	}
	if u.PreferredDateTime != nil && strings.TrimSpace(*u.PreferredDateTime) != "" {
		raw := strings.TrimSpace(*u.PreferredDateTime)
		fields["preferredDateTimeText"] = raw
		if t, ok := ParsePreferredDateTime(raw, s.now()); ok {
			fields["preferredDateTime"] = t
		} else {
			fields["preferredDateTime"] = nil
		}
	}
	if u.Reason != nil {
		fields["reason"] = *u.Reason
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *u.Status
	}
	if u.Notes != nil {
		fields["notes"] = *u.Notes
	}
	return fields, nil
}

func (s *DefaultAppointmentService) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.Repo.Update(ctx, id, bson.M{"status": models.AppointmentCancelled})
}

func (s *DefaultAppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultAppointmentService) GetUpcomingAppointments(ctx context.Context, limit int) ([]models.Appointment, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	return s.Repo.Upcoming(ctx, s.now(), limit)
}

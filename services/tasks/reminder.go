package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vetchat/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// ReminderLead is how long before the visit the reminder fires.
const ReminderLead = 24 * time.Hour

func NewAppointmentReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.AppointmentID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderFireTime is visit minus ReminderLead, or now when that already passed.
func ReminderFireTime(visit, now time.Time) time.Time {
	fireAt := visit.Add(-ReminderLead)
	if fireAt.Before(now) {
		return now
	}
	return fireAt
}

// ReminderScheduler queues a staff reminder for a booked visit.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

// AsynqReminderScheduler enqueues reminder tasks on the reminder queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Now    func() time.Time
}

func NewAsynqReminderScheduler(redisOpt asynq.RedisClientOpt) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: asynq.NewClient(redisOpt), Now: time.Now}
}

// ScheduleReminder is a no-op for appointments without a parsed visit time.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	if appt.PreferredDateTime == nil {
		return nil
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if appt.PreferredDateTime.Before(now) {
		return nil
	}

	fireAt := ReminderFireTime(*appt.PreferredDateTime, now)
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		SessionID:     appt.SessionID,
		PetName:       appt.PetName,
		FireDate:      fireAt.UTC().Format(time.RFC3339),
	}
	task, opts, err := NewAppointmentReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}

func (s *AsynqReminderScheduler) Close() error {
	return s.Client.Close()
}

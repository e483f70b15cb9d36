package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vetchat/config"
	appointmentRepo "vetchat/database/repository/appointment"
	"vetchat/models"
	"vetchat/services/tasks"
	"vetchat/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AppointmentLookup is the slice of the appointment store the worker reads.
type AppointmentLookup interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
}

// ReminderQueueOpt is the asynq connection for the reminder queue.
func ReminderQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the reminder worker in the background and returns
// its server so the caller can shut it down.
func InitReminderWorker(lookup AppointmentLookup) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		ReminderQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, handleReminderTask(lookup, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker gave up; reminders will queue until restart")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleReminderTask(lookup AppointmentLookup, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("decode reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		appt, err := lookup.GetByID(ctx, p.AppointmentID)
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			logger.Info("Skipping reminder for deleted appointment", zap.String("appointmentId", p.AppointmentID))
			return nil
		}
		if err != nil {
			return fmt.Errorf("load appointment %s: %w", p.AppointmentID, err)
		}

		switch appt.Status {
		case models.AppointmentCancelled, models.AppointmentCompleted:
			logger.Info("Skipping reminder",
				zap.String("appointmentId", appt.ID), zap.String("status", string(appt.Status)))
			return nil
		}

		fields := []zap.Field{
			zap.String("appointmentId", appt.ID),
			zap.String("ownerName", appt.OwnerName),
			zap.String("petName", appt.PetName),
			zap.String("phone", appt.Phone),
			zap.String("status", string(appt.Status)),
		}
		if appt.PreferredDateTime != nil {
			fields = append(fields, zap.Time("visitAt", *appt.PreferredDateTime))
		}
		logger.Info("Upcoming appointment: call the owner to confirm", fields...)
		return nil
	}
}

package chat

import (
	"context"

	"vetchat/models"
	"vetchat/services/bookingflow"
	"vetchat/services/intent"
	"vetchat/utils"

	"go.uber.org/zap"
)

// SendMessage records the user's message, produces the assistant's reply and
// records that too. Storage failures become an apology reply, never an error.
func (s *DefaultChatService) SendMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResult, error) {
	logger := utils.GetLogger()

	sess, err := s.Sessions.GetOrCreateSession(ctx, req.SessionID, req.Context)
	if err != nil {
		logger.Error("Failed to resolve session", zap.String("sessionId", req.SessionID), zap.Error(err))
		return &models.ChatResult{SessionID: req.SessionID, Intent: models.IntentGeneral, Message: msgStorageFailed}, nil
	}
	sessionID := sess.SessionID

	unlock := s.lock(sessionID)
	defer unlock()

	result := &models.ChatResult{SessionID: sessionID, Intent: models.IntentGeneral}

	if err := s.Sessions.AddMessage(ctx, sessionID, models.RoleUser, req.Message); err != nil {
		logger.Error("Failed to store user message", zap.String("sessionId", sessionID), zap.Error(err))
		result.Message = msgStorageFailed
		return result, nil
	}

	state, found, err := s.States.Get(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to load booking state", zap.String("sessionId", sessionID), zap.Error(err))
		result.Message = msgStorageFailed
		s.record(ctx, sessionID, result.Message)
		return result, nil
	}
	if !found {
		state = bookingflow.ConversationState{Step: bookingflow.StepIdle}
	}

	inFlow := state.Step.InProgress()
	if !inFlow {
		if trigger, ok := intent.MatchBookingTrigger(req.Message); ok {
			logger.Debug("Booking intent detected", zap.String("sessionId", sessionID), zap.String("trigger", trigger))
			inFlow = true
		}
	}

	if inFlow {
		var (
			next  bookingflow.ConversationState
			reply string
		)
		if state.Step.InProgress() {
			next, reply = bookingflow.Advance(req.Message, state)
		} else {
			state = bookingflow.ConversationState{Step: bookingflow.StepIdle}
			next, reply = bookingflow.Start()
		}
		result.Intent = models.IntentAppointmentBooking
		result.IsAppointmentFlow = true

		var step bookingflow.Step
		result.Message, step, result.Appointment = s.commit(ctx, sessionID, state, next, reply)
		result.AppointmentStep = string(step)
	} else {
		result.Message = s.generate(ctx, sessionID, req.Message)
	}

	s.record(ctx, sessionID, result.Message)
	return result, nil
}

// record stores the assistant reply. The reply is still sent if that fails.
func (s *DefaultChatService) record(ctx context.Context, sessionID, reply string) {
	if err := s.Sessions.AddMessage(ctx, sessionID, models.RoleAssistant, reply); err != nil {
		utils.GetLogger().Error("Failed to store assistant message", zap.String("sessionId", sessionID), zap.Error(err))
	}
}

// commit persists the move from current to next and returns the reply and
// step the user ends up at. A Complete flow becomes an appointment; if that
// create fails the flow goes back to Confirm so another "yes" retries it.
func (s *DefaultChatService) commit(ctx context.Context, sessionID string, current, next bookingflow.ConversationState, reply string) (string, bookingflow.Step, *models.Appointment) {
	logger := utils.GetLogger()

	record, complete := next.Record(sessionID)
	if !complete {
		if err := s.States.Set(ctx, sessionID, next); err != nil {
			logger.Error("Failed to save booking state", zap.String("sessionId", sessionID), zap.Error(err))
			return msgStorageFailed, current.Step, nil
		}
		return reply, next.Step, nil
	}

	appt, err := s.Appointments.CreateAppointment(ctx, record.Input())
	if err != nil {
		logger.Error("Failed to save appointment", zap.String("sessionId", sessionID), zap.Error(err))
		retry := bookingflow.ConversationState{Step: bookingflow.StepConfirm, Collected: next.Collected}
		if err := s.States.Set(ctx, sessionID, retry); err != nil {
			logger.Error("Failed to save booking state", zap.String("sessionId", sessionID), zap.Error(err))
		}
		return msgBookingSaveFailed, retry.Step, nil
	}

	if err := s.States.Delete(ctx, sessionID); err != nil {
		logger.Warn("Failed to clear booking state", zap.String("sessionId", sessionID), zap.Error(err))
	}
	return reply, next.Step, appt
}

// generate never fails; problems become a fixed apology.
func (s *DefaultChatService) generate(ctx context.Context, sessionID, message string) string {
	if s.Generator == nil {
		return msgGeneratorUnavailable
	}

	history, err := s.Sessions.GetMessages(ctx, sessionID, s.historyLimit()+1)
	if err != nil {
		utils.GetLogger().Warn("Failed to load chat history", zap.String("sessionId", sessionID), zap.Error(err))
		history = nil
	}
	history = withoutCurrent(history, message)
	if len(history) > s.historyLimit() {
		history = history[len(history)-s.historyLimit():]
	}

	reply, err := s.Generator.Generate(ctx, message, history)
	if err != nil {
		utils.GetLogger().Error("Text generation failed", zap.String("sessionId", sessionID), zap.Error(err))
		return msgGeneratorFailed
	}
	return reply
}

// withoutCurrent drops the just-stored user message so it is not sent twice.
func withoutCurrent(history []models.Message, message string) []models.Message {
	if n := len(history); n > 0 && history[n-1].Role == models.RoleUser && history[n-1].Content == message {
		return history[:n-1]
	}
	return history
}

func (s *DefaultChatService) GetHistory(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	if _, err := s.Sessions.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.Sessions.GetMessages(ctx, sessionID, limit)
}

// ResetAppointment discards any booking in progress. Resetting a session
// without one is not an error.
func (s *DefaultChatService) ResetAppointment(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()
	return s.States.Delete(ctx, sessionID)
}

func (s *DefaultChatService) lock(sessionID string) func() {
	if s.Locker == nil {
		return func() {}
	}
	return s.Locker.Lock(sessionID)
}

func (s *DefaultChatService) historyLimit() int {
	if s.HistoryLimit > 0 {
		return s.HistoryLimit
	}
	return defaultHistoryLimit
}

package bookingflow

import (
	"strings"

	"vetchat/services/intent"
)

// minPhoneDigits is the digit count a phone answer needs once formatting is stripped.
const minPhoneDigits = 10

var (
	affirmativeReplies = map[string]bool{"yes": true, "confirm": true, "correct": true}
	negativeReplies    = map[string]bool{"no": true, "cancel": true, "start over": true}
)

// Start enters the dialogue. Callers use it after a positive intent match.
func Start() (ConversationState, string) {
	return ConversationState{Step: StepAskOwnerName}, msgStart
}

// Advance applies one user message to the dialogue and returns the next state and the reply.
//
// It is a pure function of its inputs and never fails: invalid answers keep the
// current step and re-prompt. From Idle or Complete it only starts a new booking
// when the message carries booking intent; otherwise it answers generically and
// returns Idle.
func Advance(userMessage string, current ConversationState) (ConversationState, string) {
	next := current

	switch current.Step {
	case StepAskOwnerName:
		name := strings.TrimSpace(userMessage)
		if name == "" {
			return current, msgOwnerNameEmpty
		}
		next.Collected.OwnerName = name
		next.Step = StepAskPetName
		return next, msgAskPetName(name)

	case StepAskPetName:
		pet := strings.TrimSpace(userMessage)
		if pet == "" {
			return current, msgPetNameEmpty
		}
		next.Collected.PetName = pet
		next.Step = StepAskPhone
		return next, msgAskPhone(pet)

	case StepAskPhone:
		if countDigits(userMessage) < minPhoneDigits {
			return current, msgInvalidPhone
		}
		// The trimmed original is stored, formatting included.
		next.Collected.Phone = strings.TrimSpace(userMessage)
		next.Step = StepAskDateTime
		return next, msgAskDateTime

	case StepAskDateTime:
		when := strings.TrimSpace(userMessage)
		if when == "" {
			return current, msgDateTimeEmpty
		}
		next.Collected.PreferredDateTime = when
		next.Step = StepConfirm
		return next, msgConfirmDetails(next.Collected)

	case StepConfirm:
		reply := normalizeReply(userMessage)
		switch {
		case affirmativeReplies[reply]:
			next.Step = StepComplete
			return next, msgBooked(next.Collected)
		case negativeReplies[reply]:
			return ConversationState{Step: StepAskOwnerName}, msgRestart
		default:
			return current, msgConfirmAgain
		}

	case StepIdle, StepComplete:
		return enter(userMessage)

	default:
		// Unknown steps come from stale or foreign stored state.
		return enter(userMessage)
	}
}

func enter(userMessage string) (ConversationState, string) {
	if intent.DetectBookingIntent(userMessage) {
		return Start()
	}
	return ConversationState{Step: StepIdle}, msgAnythingElse
}

// Package bookingflow drives the guided appointment-booking dialogue.
package bookingflow

import (
	"strings"

	"vetchat/models"
)

// Step is the position of a session inside the booking dialogue.
type Step string

const (
	StepIdle         Step = "idle"
	StepAskOwnerName Step = "askOwnerName"
	StepAskPetName   Step = "askPetName"
	StepAskPhone     Step = "askPhone"
	StepAskDateTime  Step = "askDateTime"
	StepConfirm      Step = "confirm"
	StepComplete     Step = "complete"
)

// InProgress is true for the steps that expect the next answer of the dialogue.
// Idle and Complete both route like "no booking".
func (s Step) InProgress() bool {
	switch s {
	case StepAskOwnerName, StepAskPetName, StepAskPhone, StepAskDateTime, StepConfirm:
		return true
	}
	return false
}

// Collected holds the answers gathered so far, filled in step order.
type Collected struct {
	OwnerName         string `json:"ownerName,omitempty"`
	PetName           string `json:"petName,omitempty"`
	Phone             string `json:"phone,omitempty"`
	PreferredDateTime string `json:"preferredDateTime,omitempty"`
}

// ConversationState is the per-session dialogue position plus its answers.
// It is a plain value; Advance never shares memory between input and output.
type ConversationState struct {
	Step      Step      `json:"step"`
	Collected Collected `json:"collected"`
}

// BookingRecord is derived from a state once it reaches Complete.
type BookingRecord struct {
	SessionID         string
	OwnerName         string
	PetName           string
	Phone             string
	PreferredDateTime string
	Status            models.AppointmentStatus
}

// Record returns the booking to persist, or false unless the flow is Complete.
func (s ConversationState) Record(sessionID string) (BookingRecord, bool) {
	if s.Step != StepComplete {
		return BookingRecord{}, false
	}
	return BookingRecord{
		SessionID:         sessionID,
		OwnerName:         s.Collected.OwnerName,
		PetName:           s.Collected.PetName,
		Phone:             s.Collected.Phone,
		PreferredDateTime: s.Collected.PreferredDateTime,
		Status:            models.AppointmentPending,
	}, true
}

// Input converts the record into the appointment service's create payload.
func (r BookingRecord) Input() models.AppointmentInput {
	return models.AppointmentInput{
		SessionID:         r.SessionID,
		OwnerName:         r.OwnerName,
		PetName:           r.PetName,
		Phone:             r.Phone,
		PreferredDateTime: r.PreferredDateTime,
	}
}

// countDigits counts ASCII digits, ignoring any formatting around them.
func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func normalizeReply(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

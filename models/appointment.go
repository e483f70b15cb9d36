package models

import "time"

// AppointmentStatus is the lifecycle state of a booked visit.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// Appointment is the persisted booking.
// PreferredDateTime is nil when the visitor's free text could not be parsed;
// PreferredDateTimeText always keeps what they typed.
type Appointment struct {
	ID                    string            `bson:"id" json:"id"`
	SessionID             string            `bson:"sessionId" json:"sessionId"`
	OwnerName             string            `bson:"ownerName" json:"ownerName"`
	PetName               string            `bson:"petName" json:"petName"`
	Phone                 string            `bson:"phone" json:"phone"`
	PreferredDateTime     *time.Time        `bson:"preferredDateTime" json:"preferredDateTime"`
	PreferredDateTimeText string            `bson:"preferredDateTimeText" json:"preferredDateTimeText"`
	Reason                string            `bson:"reason,omitempty" json:"reason,omitempty"`
	Status                AppointmentStatus `bson:"status" json:"status"`
	Notes                 string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentInput is the create payload, from the API or from a completed booking flow.
type AppointmentInput struct {
	SessionID         string `json:"sessionId" binding:"required"`
	OwnerName         string `json:"ownerName" binding:"required"`
	PetName           string `json:"petName" binding:"required"`
	Phone             string `json:"phone" binding:"required,min=10"`
	PreferredDateTime string `json:"preferredDateTime" binding:"required"`
	Reason            string `json:"reason"`
}

// AppointmentUpdate is a partial update; nil fields are left untouched.
type AppointmentUpdate struct {
	OwnerName         *string            `json:"ownerName"`
	PetName           *string            `json:"petName"`
	Phone             *string            `json:"phone" binding:"omitempty,min=10"`
	PreferredDateTime *string            `json:"preferredDateTime"`
	Reason            *string            `json:"reason"`
	Status            *AppointmentStatus `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes             *string            `json:"notes"`
}

// AppointmentFilter narrows the admin listing.
type AppointmentFilter struct {
	Status    AppointmentStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// ReminderPayload is queued so staff get a heads-up before a visit.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	SessionID     string `json:"sessionId"`
	PetName       string `json:"petName"`
	FireDate      string `json:"fireDate"`
}

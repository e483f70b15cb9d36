package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBookingIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"schedule a checkup", "I'd like to schedule a checkup", true},
		{"book an appointment", "I want to book an appointment", true},
		{"book appointment no article", "book appointment please", true},
		{"schedule a vet visit", "Can I schedule a vet visit for Rex?", true},
		{"make an appointment", "how do I make an appointment", true},
		{"need to see a vet", "my dog is limping, I need to see a vet", true},
		{"need a vet", "I need a vet tomorrow", true},
		{"want to book", "I want to book", true},
		{"want to schedule", "we want to schedule something", true},
		{"set up a visit", "Could you set up a visit?", true},
		{"set up an appointment", "set up an appointment", true},
		{"upper case", "BOOK AN APPOINTMENT", true},
		{"untrimmed", "   schedule an appointment   \n", true},
		{"book a checkup", "can I book a checkup for my cat", true},
		{"food question", "what food is good for cats", false},
		{"vaccine question", "When should my puppy get vaccinated?", false},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"appointment noun alone", "appointment", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBookingIntent(tt.message))
		})
	}
}

func TestMatchBookingTrigger(t *testing.T) {
	name, ok := MatchBookingTrigger("I'd like to schedule a checkup")
	assert.True(t, ok)
	assert.Equal(t, "schedule_visit", name)

	name, ok = MatchBookingTrigger("is chocolate toxic to dogs")
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestBookingTriggersHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, tr := range bookingTriggers {
		assert.False(t, seen[tr.name], "duplicate trigger name %q", tr.name)
		seen[tr.name] = true
	}
}

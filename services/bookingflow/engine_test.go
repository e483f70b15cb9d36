package bookingflow

import (
	"testing"

	"vetchat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_HappyPath(t *testing.T) {
	turns := []struct {
		message  string
		wantStep Step
	}{
		{"I want to book an appointment", StepAskOwnerName},
		{"Jane Doe", StepAskPetName},
		{"Rex", StepAskPhone},
		{"5551234567", StepAskDateTime},
		{"tomorrow 3pm", StepConfirm},
		{"yes", StepComplete},
	}

	state := ConversationState{Step: StepIdle}
	for _, turn := range turns {
		var reply string
		state, reply = Advance(turn.message, state)
		require.Equal(t, turn.wantStep, state.Step, "after %q", turn.message)
		require.NotEmpty(t, reply)
	}

	assert.Equal(t, Collected{
		OwnerName:         "Jane Doe",
		PetName:           "Rex",
		Phone:             "5551234567",
		PreferredDateTime: "tomorrow 3pm",
	}, state.Collected)

	record, ok := state.Record("sess-1")
	require.True(t, ok)
	assert.Equal(t, BookingRecord{
		SessionID:         "sess-1",
		OwnerName:         "Jane Doe",
		PetName:           "Rex",
		Phone:             "5551234567",
		PreferredDateTime: "tomorrow 3pm",
		Status:            models.AppointmentPending,
	}, record)
}

func TestAdvance_RepliesMentionCollectedValues(t *testing.T) {
	state, reply := Advance("  Jane Doe  ", ConversationState{Step: StepAskOwnerName})
	assert.Equal(t, "Jane Doe", state.Collected.OwnerName)
	assert.Contains(t, reply, "Jane Doe")

	state, reply = Advance("Rex", state)
	assert.Contains(t, reply, "Rex")

	state, _ = Advance("555 123 4567", state)
	state, reply = Advance("Friday morning", state)
	assert.Equal(t, StepConfirm, state.Step)
	for _, want := range []string{"Jane Doe", "Rex", "555 123 4567", "Friday morning"} {
		assert.Contains(t, reply, want)
	}

	state, reply = Advance("YES ", state)
	assert.Equal(t, StepComplete, state.Step)
	assert.Contains(t, reply, "Rex")
	assert.Contains(t, reply, "Friday morning")
	assert.Contains(t, reply, "555 123 4567")
}

func TestAdvance_PhoneValidation(t *testing.T) {
	atPhone := ConversationState{
		Step:      StepAskPhone,
		Collected: Collected{OwnerName: "Jane Doe", PetName: "Rex"},
	}

	tests := []struct {
		name      string
		input     string
		wantStep  Step
		wantPhone string
	}{
		{"five digits", "12345", StepAskPhone, ""},
		{"nine digits", "555-123-456", StepAskPhone, ""},
		{"letters only", "call me maybe", StepAskPhone, ""},
		{"empty", "", StepAskPhone, ""},
		{"dashed ten digits", "555-123-4567", StepAskDateTime, "555-123-4567"},
		{"formatted with spaces", "  (555) 123 4567 ", StepAskDateTime, "(555) 123 4567"},
		{"international", "+1 555 123 4567", StepAskDateTime, "+1 555 123 4567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, reply := Advance(tt.input, atPhone)
			assert.Equal(t, tt.wantStep, next.Step)
			assert.Equal(t, tt.wantPhone, next.Collected.Phone)
			assert.Equal(t, "Jane Doe", next.Collected.OwnerName)
			assert.Equal(t, "Rex", next.Collected.PetName)
			if tt.wantStep == StepAskPhone {
				assert.Equal(t, msgInvalidPhone, reply)
				assert.Contains(t, reply, "10 digits")
			} else {
				assert.Equal(t, msgAskDateTime, reply)
			}
		})
	}
}

func confirmState() ConversationState {
	return ConversationState{
		Step: StepConfirm,
		Collected: Collected{
			OwnerName:         "Jane Doe",
			PetName:           "Rex",
			Phone:             "5551234567",
			PreferredDateTime: "tomorrow 3pm",
		},
	}
}

func TestAdvance_Confirm(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStep  Step
		wantReply string
		cleared   bool
	}{
		{"yes", "yes", StepComplete, "", false},
		{"confirm", "Confirm", StepComplete, "", false},
		{"correct", "  correct\n", StepComplete, "", false},
		{"no", "no", StepAskOwnerName, msgRestart, true},
		{"cancel", "CANCEL", StepAskOwnerName, msgRestart, true},
		{"start over", "start over", StepAskOwnerName, msgRestart, true},
		{"maybe", "maybe", StepConfirm, msgConfirmAgain, false},
		{"yes with extra words", "yes please", StepConfirm, msgConfirmAgain, false},
		{"empty", "", StepConfirm, msgConfirmAgain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, reply := Advance(tt.input, confirmState())
			assert.Equal(t, tt.wantStep, next.Step)
			if tt.wantReply != "" {
				assert.Equal(t, tt.wantReply, reply)
			}
			if tt.cleared {
				assert.Equal(t, Collected{}, next.Collected)
			} else {
				assert.Equal(t, confirmState().Collected, next.Collected)
			}
		})
	}
}

func TestAdvance_EmptyAnswersReprompt(t *testing.T) {
	for _, step := range []Step{StepAskOwnerName, StepAskPetName, StepAskDateTime} {
		t.Run(string(step), func(t *testing.T) {
			current := ConversationState{Step: step, Collected: Collected{OwnerName: "Jane"}}
			next, reply := Advance("   \t", current)
			assert.Equal(t, current, next)
			assert.NotEmpty(t, reply)
		})
	}
}

func TestAdvance_IdleAndComplete(t *testing.T) {
	for _, step := range []Step{StepIdle, StepComplete, Step("bogus")} {
		t.Run(string(step), func(t *testing.T) {
			current := ConversationState{Step: step, Collected: Collected{OwnerName: "Old"}}

			next, reply := Advance("what food is good for cats", current)
			assert.Equal(t, ConversationState{Step: StepIdle}, next)
			assert.Equal(t, msgAnythingElse, reply)

			next, reply = Advance("I need to see a vet", current)
			assert.Equal(t, ConversationState{Step: StepAskOwnerName}, next)
			assert.Equal(t, msgStart, reply)
		})
	}
}

func TestAdvance_IsPure(t *testing.T) {
	states := []ConversationState{
		{Step: StepIdle},
		{Step: StepAskOwnerName},
		{Step: StepAskPetName, Collected: Collected{OwnerName: "Jane"}},
		{Step: StepAskPhone, Collected: Collected{OwnerName: "Jane", PetName: "Rex"}},
		{Step: StepAskDateTime, Collected: Collected{OwnerName: "Jane", PetName: "Rex", Phone: "5551234567"}},
		confirmState(),
	}
	messages := []string{"yes", "no", "maybe", "5551234567", "book an appointment", ""}

	for _, s := range states {
		for _, m := range messages {
			before := s
			n1, r1 := Advance(m, s)
			n2, r2 := Advance(m, s)
			assert.Equal(t, n1, n2)
			assert.Equal(t, r1, r2)
			assert.Equal(t, before, s, "input state must not change")
		}
	}
}

func TestAdvance_StepsOnlyMoveAlongTheTable(t *testing.T) {
	allowed := map[Step][]Step{
		StepIdle:         {StepIdle, StepAskOwnerName},
		StepAskOwnerName: {StepAskOwnerName, StepAskPetName},
		StepAskPetName:   {StepAskPetName, StepAskPhone},
		StepAskPhone:     {StepAskPhone, StepAskDateTime},
		StepAskDateTime:  {StepAskDateTime, StepConfirm},
		StepConfirm:      {StepConfirm, StepComplete, StepAskOwnerName},
		StepComplete:     {StepIdle, StepAskOwnerName},
	}
	messages := []string{"", "yes", "no", "Rex", "12345", "555-123-4567", "schedule a visit", "maybe"}

	for from, to := range allowed {
		for _, m := range messages {
			next, _ := Advance(m, ConversationState{Step: from, Collected: confirmState().Collected})
			assert.Contains(t, to, next.Step, "from %s on %q", from, m)
		}
	}
}

func TestStart(t *testing.T) {
	state, reply := Start()
	assert.Equal(t, StepAskOwnerName, state.Step)
	assert.Equal(t, Collected{}, state.Collected)
	assert.Equal(t, msgStart, reply)
}

func TestStep_InProgress(t *testing.T) {
	assert.False(t, StepIdle.InProgress())
	assert.False(t, StepComplete.InProgress())
	assert.False(t, Step("").InProgress())
	for _, s := range []Step{StepAskOwnerName, StepAskPetName, StepAskPhone, StepAskDateTime, StepConfirm} {
		assert.True(t, s.InProgress(), string(s))
	}
}

func TestRecord_OnlyWhenComplete(t *testing.T) {
	_, ok := confirmState().Record("sess-1")
	assert.False(t, ok)

	rec, ok := ConversationState{Step: StepComplete, Collected: confirmState().Collected}.Record("sess-1")
	require.True(t, ok)
	in := rec.Input()
	assert.Equal(t, "sess-1", in.SessionID)
	assert.Equal(t, "tomorrow 3pm", in.PreferredDateTime)
	assert.Equal(t, "5551234567", in.Phone)
}

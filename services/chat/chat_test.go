package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vetchat/models"
	"vetchat/services/bookingflow"
	"vetchat/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu         sync.Mutex
	messages   map[string][]models.Message
	addErrs    map[models.MessageRole]error
	resolveErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{messages: map[string][]models.Message{}}
}

func (f *fakeSessions) CreateSession(_ context.Context, _ models.SessionInput) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "generated"
	f.messages[id] = []models.Message{}
	return &models.Session{SessionID: id}, nil
}

func (f *fakeSessions) GetSession(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[id]; !ok {
		return nil, session.ErrNotFound
	}
	return &models.Session{SessionID: id}, nil
}

func (f *fakeSessions) GetOrCreateSession(ctx context.Context, id string, in *models.SessionInput) (*models.Session, error) {
	f.mu.Lock()
	if f.resolveErr != nil {
		f.mu.Unlock()
		return nil, f.resolveErr
	}
	if id != "" {
		if _, ok := f.messages[id]; !ok {
			f.messages[id] = []models.Message{}
		}
		f.mu.Unlock()
		return &models.Session{SessionID: id}, nil
	}
	f.mu.Unlock()
	return f.CreateSession(ctx, models.SessionInput{})
}

func (f *fakeSessions) AddMessage(_ context.Context, id string, role models.MessageRole, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.addErrs[role]; err != nil {
		return err
	}
	f.messages[id] = append(f.messages[id], models.Message{Role: role, Content: content})
	return nil
}

func (f *fakeSessions) GetMessages(_ context.Context, id string, limit int) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.messages[id]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]models.Message(nil), msgs...), nil
}

func (f *fakeSessions) GetSessionsByUserID(context.Context, string, int) ([]models.SessionSummary, error) {
	return nil, nil
}

func (f *fakeSessions) DeleteSession(context.Context, string) error { return nil }

type fakeAppointments struct {
	mu        sync.Mutex
	created   []models.AppointmentInput
	createErr error
}

func (f *fakeAppointments) CreateAppointment(_ context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &models.Appointment{ID: "appt-1", SessionID: in.SessionID, PetName: in.PetName, Status: models.AppointmentPending}, nil
}

func (f *fakeAppointments) GetAppointmentByID(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) GetAppointmentsBySession(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) GetAppointmentsByPhone(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) GetAllAppointments(context.Context, models.AppointmentFilter) ([]models.Appointment, int64, error) {
	return nil, 0, nil
}

func (f *fakeAppointments) UpdateAppointment(context.Context, string, models.AppointmentUpdate) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) CancelAppointment(context.Context, string) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) DeleteAppointment(context.Context, string) error { return nil }

func (f *fakeAppointments) GetUpcomingAppointments(context.Context, int) ([]models.Appointment, error) {
	return nil, nil
}

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	history []models.Message
}

func (g *fakeGenerator) Generate(_ context.Context, _ string, history []models.Message) (string, error) {
	g.calls++
	g.history = history
	return g.reply, g.err
}

// flakyStore fails Get or Set on demand and otherwise delegates to a MemoryStore.
type flakyStore struct {
	*bookingflow.MemoryStore
	getErr error
	setErr error
}

func (s *flakyStore) Get(ctx context.Context, id string) (bookingflow.ConversationState, bool, error) {
	if s.getErr != nil {
		return bookingflow.ConversationState{}, false, s.getErr
	}
	return s.MemoryStore.Get(ctx, id)
}

func (s *flakyStore) Set(ctx context.Context, id string, state bookingflow.ConversationState) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.MemoryStore.Set(ctx, id, state)
}

type fixture struct {
	svc          *DefaultChatService
	sessions     *fakeSessions
	appointments *fakeAppointments
	generator    *fakeGenerator
	store        *flakyStore
}

func newFixture() *fixture {
	f := &fixture{
		sessions:     newFakeSessions(),
		appointments: &fakeAppointments{},
		generator:    &fakeGenerator{reply: "Cats need taurine."},
		store:        &flakyStore{MemoryStore: bookingflow.NewMemoryStore(0)},
	}
	f.svc = &DefaultChatService{
		Sessions:     f.sessions,
		Appointments: f.appointments,
		Generator:    f.generator,
		States:       f.store,
		Locker:       bookingflow.NewSessionLocker(),
	}
	return f
}

func (f *fixture) send(t *testing.T, sessionID, message string) *models.ChatResult {
	t.Helper()
	res, err := f.svc.SendMessage(context.Background(), models.ChatRequest{SessionID: sessionID, Message: message})
	require.NoError(t, err)
	return res
}

func TestSendMessage_BookingRoundTrip(t *testing.T) {
	f := newFixture()

	res := f.send(t, "s1", "I want to book an appointment")
	assert.Equal(t, models.IntentAppointmentBooking, res.Intent)
	assert.True(t, res.IsAppointmentFlow)
	assert.Equal(t, "askOwnerName", res.AppointmentStep)

	for _, m := range []string{"Jane Doe", "Rex", "5551234567", "tomorrow 3pm"} {
		f.send(t, "s1", m)
	}
	res = f.send(t, "s1", "yes")
	assert.Equal(t, "complete", res.AppointmentStep)
	require.NotNil(t, res.Appointment)
	assert.Equal(t, "appt-1", res.Appointment.ID)

	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, models.AppointmentInput{
		SessionID:         "s1",
		OwnerName:         "Jane Doe",
		PetName:           "Rex",
		Phone:             "5551234567",
		PreferredDateTime: "tomorrow 3pm",
	}, f.appointments.created[0])

	_, found, _ := f.store.Get(context.Background(), "s1")
	assert.False(t, found, "state is discarded after a successful booking")
	assert.Zero(t, f.generator.calls)

	// 6 user + 6 assistant messages.
	assert.Len(t, f.sessions.messages["s1"], 12)
}

func TestSendMessage_MidFlowSuppressesIntent(t *testing.T) {
	f := newFixture()
	f.send(t, "s1", "book an appointment")

	res := f.send(t, "s1", "I want to book an appointment")
	assert.Equal(t, "askPetName", res.AppointmentStep)

	state, found, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "I want to book an appointment", state.Collected.OwnerName)
}

func TestSendMessage_GeneralQuestion(t *testing.T) {
	f := newFixture()

	f.send(t, "s1", "hello")
	res := f.send(t, "s1", "what food is good for cats")
	assert.Equal(t, models.IntentGeneral, res.Intent)
	assert.False(t, res.IsAppointmentFlow)
	assert.Equal(t, "Cats need taurine.", res.Message)

	// History excludes the current message.
	require.Len(t, f.generator.history, 2)
	assert.Equal(t, "hello", f.generator.history[0].Content)
	assert.Equal(t, models.RoleAssistant, f.generator.history[1].Role)

	_, found, _ := f.store.Get(context.Background(), "s1")
	assert.False(t, found)
}

func TestSendMessage_GeneratorFallbacks(t *testing.T) {
	f := newFixture()
	f.generator.err = errors.New("quota exceeded")
	res := f.send(t, "s1", "is chocolate toxic?")
	assert.Equal(t, msgGeneratorFailed, res.Message)

	f.svc.Generator = nil
	res = f.send(t, "s1", "is chocolate toxic?")
	assert.Equal(t, msgGeneratorUnavailable, res.Message)
}

func TestSendMessage_FailedBookingCanBeRetried(t *testing.T) {
	f := newFixture()
	f.appointments.createErr = errors.New("mongo down")

	for _, m := range []string{"book an appointment", "Jane", "Rex", "5551234567", "Friday 10am"} {
		f.send(t, "s1", m)
	}
	res := f.send(t, "s1", "yes")
	assert.Equal(t, msgBookingSaveFailed, res.Message)
	assert.Equal(t, models.IntentAppointmentBooking, res.Intent)
	assert.Equal(t, "confirm", res.AppointmentStep)
	assert.Nil(t, res.Appointment)

	state, found, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, bookingflow.StepConfirm, state.Step)
	assert.Equal(t, bookingflow.Collected{
		OwnerName:         "Jane",
		PetName:           "Rex",
		Phone:             "5551234567",
		PreferredDateTime: "Friday 10am",
	}, state.Collected)

	// Storage is back; the next "yes" books it.
	f.appointments.createErr = nil
	res = f.send(t, "s1", "yes")
	assert.Equal(t, "complete", res.AppointmentStep)
	require.NotNil(t, res.Appointment)
	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, "Jane", f.appointments.created[0].OwnerName)
	assert.Zero(t, f.generator.calls)

	_, found, _ = f.store.Get(context.Background(), "s1")
	assert.False(t, found)
}

func TestSendMessage_StorageFailuresBecomeApology(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name  string
		setup func(f *fixture)
		step  string
	}{
		{"session lookup", func(f *fixture) { f.sessions.resolveErr = boom }, ""},
		{"user message", func(f *fixture) {
			f.sessions.addErrs = map[models.MessageRole]error{models.RoleUser: boom}
		}, ""},
		{"state load", func(f *fixture) { f.store.getErr = boom }, ""},
		{"state save", func(f *fixture) { f.store.setErr = boom }, "askOwnerName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.send(t, "s1", "book an appointment")
			tt.setup(f)

			res, err := f.svc.SendMessage(context.Background(), models.ChatRequest{SessionID: "s1", Message: "Jane"})
			require.NoError(t, err)
			assert.Equal(t, msgStorageFailed, res.Message)
			assert.Equal(t, "s1", res.SessionID)
			assert.Equal(t, tt.step, res.AppointmentStep)
			assert.Zero(t, f.generator.calls)
			assert.Empty(t, f.appointments.created)
		})
	}
}

func TestSendMessage_StateSaveFailureKeepsStep(t *testing.T) {
	f := newFixture()
	f.send(t, "s1", "book an appointment")
	f.store.setErr = errors.New("connection refused")
	f.send(t, "s1", "Jane")

	f.store.setErr = nil
	res := f.send(t, "s1", "Jane")
	assert.Equal(t, "askPetName", res.AppointmentStep)
}

func TestSendMessage_AssistantMessageFailureStillReplies(t *testing.T) {
	f := newFixture()
	f.sessions.addErrs = map[models.MessageRole]error{models.RoleAssistant: errors.New("write conflict")}

	res := f.send(t, "s1", "what food is good for cats")
	assert.Equal(t, "Cats need taurine.", res.Message)
	require.Len(t, f.sessions.messages["s1"], 1)
	assert.Equal(t, models.RoleUser, f.sessions.messages["s1"][0].Role)
}

func TestSendMessage_NewSession(t *testing.T) {
	f := newFixture()
	res := f.send(t, "", "hi")
	assert.Equal(t, "generated", res.SessionID)
}

func TestResetAppointment(t *testing.T) {
	f := newFixture()
	f.send(t, "s1", "book an appointment")
	f.send(t, "s1", "Jane")

	require.NoError(t, f.svc.ResetAppointment(context.Background(), "s1"))
	require.NoError(t, f.svc.ResetAppointment(context.Background(), "s1"))

	res := f.send(t, "s1", "what vaccines does a puppy need")
	assert.Equal(t, models.IntentGeneral, res.Intent)
}

func TestGetHistory(t *testing.T) {
	f := newFixture()
	f.send(t, "s1", "hello")

	msgs, err := f.svc.GetHistory(context.Background(), "s1", 50)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	_, err = f.svc.GetHistory(context.Background(), "missing", 50)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSendMessage_ConcurrentSessionsStayIndependent(t *testing.T) {
	f := newFixture()
	f.generator = nil
	f.svc.Generator = nil

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for _, m := range []string{"book an appointment", "Owner " + id, "Pet " + id} {
				_, err := f.svc.SendMessage(context.Background(), models.ChatRequest{SessionID: id, Message: m})
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []string{"a", "b", "c", "d"} {
		state, found, err := f.store.Get(context.Background(), id)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, bookingflow.StepAskPhone, state.Step)
		assert.Equal(t, "Owner "+id, state.Collected.OwnerName)
		assert.Equal(t, "Pet "+id, state.Collected.PetName)
	}
}

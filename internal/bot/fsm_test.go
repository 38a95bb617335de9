package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type fakeAPI struct {
	types      []AnimalType
	slots      []string
	registered []RegisterRequest
	booked     []BookRequest

	registerErr error
	bookErr     error
	typesErr    error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		types: []AnimalType{{ID: 1, Name: "Кошка"}, {ID: 2, Name: "Собака"}},
		slots: []string{"21.03.2030 09:00", "21.03.2030 09:30"},
	}
}

func (f *fakeAPI) Register(ctx context.Context, in RegisterRequest) (RegisteredClient, error) {
	if f.registerErr != nil {
		return RegisteredClient{}, f.registerErr
	}
	f.registered = append(f.registered, in)
	return RegisteredClient{ID: int64(100 + len(f.registered)), FirstName: in.FirstName}, nil
}

func (f *fakeAPI) AnimalTypes(ctx context.Context) ([]AnimalType, error) {
	return f.types, f.typesErr
}

func (f *fakeAPI) FreeSlots(ctx context.Context) ([]string, error) {
	return f.slots, nil
}

func (f *fakeAPI) Book(ctx context.Context, in BookRequest) (string, error) {
	if f.bookErr != nil {
		err := f.bookErr
		f.bookErr = nil
		return "", err
	}
	f.booked = append(f.booked, in)
	return "Запись на прием произошла успешно", nil
}

type testStore struct {
	m       map[int64]Session
	saveErr error
}

func newTestStore() *testStore {
	return &testStore{m: map[int64]Session{}}
}

func (s *testStore) Get(ctx context.Context, chatID int64) (Session, error) {
	sess, ok := s.m[chatID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *testStore) Save(ctx context.Context, sess Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.m[sess.ChatID] = sess
	return nil
}

func (s *testStore) Delete(ctx context.Context, chatID int64) error {
	delete(s.m, chatID)
	return nil
}

type countingObserver struct {
	states []string
}

func (o *countingObserver) ObserveBotUpdate(state string) { o.states = append(o.states, state) }

const chat int64 = 555

func newTestMachine(api API, store SessionStore) *Machine {
	m := NewMachine(api, store)
	m.now = func() time.Time { return time.Date(2030, 3, 20, 12, 0, 0, 0, time.UTC) }
	return m
}

func send(t *testing.T, m *Machine, in Inbound) Reply {
	t.Helper()
	in.ChatID = chat
	r, err := m.Handle(context.Background(), in)
	require.NoError(t, err)
	return r
}

// -------------------------
// Tests
// -------------------------

func TestMachine_FullConversation(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore()
	obs := &countingObserver{}
	m := newTestMachine(api, store)
	m.obs = obs

	r := send(t, m, Inbound{Text: "/start"})
	assert.Contains(t, r.Text, "введите ваше имя")
	assert.Equal(t, StateAwaitingFirstName, store.m[chat].State)

	r = send(t, m, Inbound{Text: "  Иван "})
	assert.Equal(t, msgAskLastName, r.Text)

	r = send(t, m, Inbound{Text: "Петров"})
	assert.True(t, r.RequestContact)
	assert.Equal(t, StateAwaitingPhone, store.m[chat].State)

	r = send(t, m, Inbound{ContactPhone: "79991234567"})
	assert.Contains(t, r.Text, msgRegistered)
	assert.Equal(t, []string{"Кошка", "Собака"}, r.Keyboard)
	require.Len(t, api.registered, 1)
	assert.Equal(t, RegisterRequest{
		FirstName:      "Иван",
		LastName:       "Петров",
		Phone:          "79991234567",
		TelegramChatID: "555",
	}, api.registered[0])

	r = send(t, m, Inbound{Text: "Собака"})
	assert.Equal(t, msgChooseSlot, r.Text)
	assert.Equal(t, api.slots, r.Keyboard)
	assert.Equal(t, StateAwaitingSlot, store.m[chat].State)

	r = send(t, m, Inbound{Text: "21.03.2030 09:30"})
	assert.True(t, r.RemoveKeyboard)
	assert.Contains(t, r.Text, "21.03.2030 09:30")
	require.Len(t, api.booked, 1)
	assert.Equal(t, BookRequest{ClientID: 101, AppointmentDate: "21.03.2030 09:30", AnimalTypeID: 2}, api.booked[0])

	sess := store.m[chat]
	assert.Equal(t, StateDone, sess.State)
	assert.Equal(t, int64(101), sess.ClientID)

	r = send(t, m, Inbound{Text: "ещё"})
	assert.Equal(t, msgUseStart, r.Text)

	assert.Equal(t, []string{
		"start",
		string(StateAwaitingFirstName),
		string(StateAwaitingLastName),
		string(StateAwaitingPhone),
		string(StateAwaitingAnimalType),
		string(StateAwaitingSlot),
		string(StateDone),
	}, obs.states)
}

func TestMachine_EmptyNameReprompts(t *testing.T) {
	store := newTestStore()
	m := newTestMachine(newFakeAPI(), store)

	send(t, m, Inbound{Text: "/start"})
	r := send(t, m, Inbound{Text: "   "})
	assert.Equal(t, msgAskFirstName, r.Text)
	assert.Equal(t, StateAwaitingFirstName, store.m[chat].State)
}

func TestMachine_TypedPhoneIsRejected(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore()
	m := newTestMachine(api, store)

	send(t, m, Inbound{Text: "/start"})
	send(t, m, Inbound{Text: "Иван"})
	send(t, m, Inbound{Text: "Петров"})

	r := send(t, m, Inbound{Text: "+79991234567"})
	assert.True(t, r.RequestContact)
	assert.Contains(t, r.Text, "Поделиться контактом")
	assert.Empty(t, api.registered)
	assert.Equal(t, StateAwaitingPhone, store.m[chat].State)
}

func TestMachine_RegistrationRejectedKeepsState(t *testing.T) {
	api := newFakeAPI()
	api.registerErr = &RejectedError{Code: "validation_error", Message: "Введите корректный номер телефона."}
	store := newTestStore()
	m := newTestMachine(api, store)

	send(t, m, Inbound{Text: "/start"})
	send(t, m, Inbound{Text: "Иван"})
	send(t, m, Inbound{Text: "Петров"})

	r := send(t, m, Inbound{ContactPhone: "123"})
	assert.Contains(t, r.Text, "Введите корректный номер телефона.")
	assert.True(t, r.RequestContact)
	assert.Equal(t, StateAwaitingPhone, store.m[chat].State)
}

func TestMachine_RegistrationTransportFailure(t *testing.T) {
	api := newFakeAPI()
	api.registerErr = errors.New("connection refused")
	store := newTestStore()
	m := newTestMachine(api, store)

	send(t, m, Inbound{Text: "/start"})
	send(t, m, Inbound{Text: "Иван"})
	send(t, m, Inbound{Text: "Петров"})

	r := send(t, m, Inbound{ContactPhone: "+79991234567"})
	assert.Contains(t, r.Text, msgServiceUnavailable)
	assert.Equal(t, StateAwaitingPhone, store.m[chat].State)
}

func TestMachine_UnknownAnimalType(t *testing.T) {
	store := newTestStore()
	store.m[chat] = Session{ChatID: chat, State: StateAwaitingAnimalType, ClientID: 9}
	m := newTestMachine(newFakeAPI(), store)

	r := send(t, m, Inbound{Text: "собака"})
	assert.Equal(t, msgUnknownAnimalType, r.Text)
	assert.Equal(t, []string{"Кошка", "Собака"}, r.Keyboard)
	assert.Equal(t, StateAwaitingAnimalType, store.m[chat].State)
}

func TestMachine_SlotRejectedShowsRefreshedSlots(t *testing.T) {
	api := newFakeAPI()
	api.bookErr = &RejectedError{Code: "slot_taken", Message: "Выбранный слот уже занят"}
	store := newTestStore()
	store.m[chat] = Session{ChatID: chat, State: StateAwaitingSlot, ClientID: 9, AnimalTypeID: 1}
	m := newTestMachine(api, store)

	r := send(t, m, Inbound{Text: "21.03.2030 09:00"})
	assert.Contains(t, r.Text, "Выбранный слот уже занят")
	assert.Equal(t, api.slots, r.Keyboard)
	assert.Equal(t, StateAwaitingSlot, store.m[chat].State)

	r = send(t, m, Inbound{Text: "21.03.2030 09:30"})
	assert.True(t, r.RemoveKeyboard)
	assert.Equal(t, StateDone, store.m[chat].State)
}

func TestMachine_NoSlotsFinishesConversation(t *testing.T) {
	api := newFakeAPI()
	api.slots = nil
	store := newTestStore()
	store.m[chat] = Session{ChatID: chat, State: StateAwaitingAnimalType, ClientID: 9}
	m := newTestMachine(api, store)

	r := send(t, m, Inbound{Text: "Кошка"})
	assert.Equal(t, msgNoSlots, r.Text)
	assert.Equal(t, StateDone, store.m[chat].State)
}

func TestMachine_StartResumesRegisteredClient(t *testing.T) {
	api := newFakeAPI()
	store := newTestStore()
	store.m[chat] = Session{ChatID: chat, State: StateDone, ClientID: 77, AnimalTypeID: 2}
	m := newTestMachine(api, store)

	r := send(t, m, Inbound{Text: "/start"})
	assert.Contains(t, r.Text, msgWelcomeBack)
	assert.Equal(t, []string{"Кошка", "Собака"}, r.Keyboard)

	sess := store.m[chat]
	assert.Equal(t, StateAwaitingAnimalType, sess.State)
	assert.Equal(t, int64(77), sess.ClientID)
	assert.Zero(t, sess.AnimalTypeID)
	assert.Empty(t, api.registered)
}

func TestMachine_CancelDeletesSession(t *testing.T) {
	store := newTestStore()
	m := newTestMachine(newFakeAPI(), store)

	send(t, m, Inbound{Text: "/start"})
	r := send(t, m, Inbound{Text: "/cancel"})
	assert.Equal(t, msgCancelled, r.Text)
	assert.NotContains(t, store.m, chat)

	r = send(t, m, Inbound{Text: "Иван"})
	assert.Equal(t, msgUseStart, r.Text)
}

func TestMachine_StoreFailureIsReturned(t *testing.T) {
	store := newTestStore()
	store.saveErr = errors.New("disk full")
	m := newTestMachine(newFakeAPI(), store)

	_, err := m.Handle(context.Background(), Inbound{ChatID: chat, Text: "/start"})
	assert.Error(t, err)
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vet-clinic-booking/internal/platform/logger"
)

// Inbound es un mensaje entrante ya despojado del transporte.
type Inbound struct {
	ChatID       int64
	Text         string
	ContactPhone string // no vacío cuando el usuario compartió su contacto
}

// Reply es lo que hay que contestar. Keyboard son botones de respuesta, una fila por opción.
type Reply struct {
	Text           string
	Keyboard       []string
	RequestContact bool
	RemoveKeyboard bool
}

type UpdateObserver interface {
	ObserveBotUpdate(state string)
}

type nopObserver struct{}

func (nopObserver) ObserveBotUpdate(string) {}

// Machine es la máquina de estados de la conversación de registro y reserva.
type Machine struct {
	api      API
	sessions SessionStore
	obs      UpdateObserver
	log      logger.Logger
	now      func() time.Time
}

type MachineOption func(*Machine)

func WithObserver(o UpdateObserver) MachineOption {
	return func(m *Machine) {
		if o != nil {
			m.obs = o
		}
	}
}

func WithLogger(l logger.Logger) MachineOption {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

func NewMachine(api API, sessions SessionStore, opts ...MachineOption) *Machine {
	m := &Machine{
		api:      api,
		sessions: sessions,
		obs:      nopObserver{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle avanza la conversación del chat. Solo devuelve error si falla el almacén de sesiones;
// los fallos de la API se convierten en respuestas para el usuario.
func (m *Machine) Handle(ctx context.Context, in Inbound) (Reply, error) {
	text := strings.TrimSpace(in.Text)

	switch text {
	case cmdStart:
		m.obs.ObserveBotUpdate("start")
		return m.start(ctx, in.ChatID)
	case cmdCancel:
		m.obs.ObserveBotUpdate("cancel")
		if err := m.sessions.Delete(ctx, in.ChatID); err != nil {
			return Reply{}, fmt.Errorf("delete session: %w", err)
		}
		return Reply{Text: msgCancelled, RemoveKeyboard: true}, nil
	}

	s, err := m.sessions.Get(ctx, in.ChatID)
	if errors.Is(err, ErrSessionNotFound) {
		m.obs.ObserveBotUpdate("no_session")
		return Reply{Text: msgUseStart}, nil
	}
	if err != nil {
		return Reply{}, fmt.Errorf("get session: %w", err)
	}

	m.obs.ObserveBotUpdate(string(s.State))

	switch s.State {
	case StateAwaitingFirstName:
		if text == "" {
			return Reply{Text: msgAskFirstName}, nil
		}
		s.FirstName = text
		s.State = StateAwaitingLastName
		return m.save(ctx, s, Reply{Text: msgAskLastName})

	case StateAwaitingLastName:
		if text == "" {
			return Reply{Text: msgAskLastName}, nil
		}
		s.LastName = text
		s.State = StateAwaitingPhone
		return m.save(ctx, s, Reply{Text: msgAskContact, RequestContact: true})

	case StateAwaitingPhone:
		return m.onContact(ctx, s, strings.TrimSpace(in.ContactPhone))

	case StateAwaitingAnimalType:
		return m.onAnimalType(ctx, s, text)

	case StateAwaitingSlot:
		return m.onSlot(ctx, s, text)

	default:
		return Reply{Text: msgUseStart, RemoveKeyboard: true}, nil
	}
}

func (m *Machine) start(ctx context.Context, chatID int64) (Reply, error) {
	s, err := m.sessions.Get(ctx, chatID)
	switch {
	case err == nil && s.ClientID > 0:
		// cliente ya registrado: directo a elegir tipo de animal
		s.State = StateAwaitingAnimalType
		s.AnimalTypeID, s.AnimalTypeName = 0, ""
		return m.animalTypePrompt(ctx, s, msgWelcomeBack)
	case err != nil && !errors.Is(err, ErrSessionNotFound):
		return Reply{}, fmt.Errorf("get session: %w", err)
	}

	return m.save(ctx, Session{ChatID: chatID, State: StateAwaitingFirstName}, Reply{Text: msgWelcome, RemoveKeyboard: true})
}

func (m *Machine) onContact(ctx context.Context, s Session, phone string) (Reply, error) {
	if phone == "" {
		return Reply{Text: msgContactOnly + "\n" + msgAskContact, RequestContact: true}, nil
	}
	s.Phone = phone

	client, err := m.api.Register(ctx, RegisterRequest{
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Phone:          phone,
		TelegramChatID: strconv.FormatInt(s.ChatID, 10),
	})
	if err != nil {
		if rej, ok := AsRejected(err); ok {
			return Reply{Text: msgRegistrationFailed + "\n" + rej.Message, RequestContact: true}, nil
		}
		m.log.Warn("bot register failed", map[string]any{"chat_id": s.ChatID, "err": err})
		return Reply{Text: msgServiceUnavailable, RequestContact: true}, nil
	}

	s.ClientID = client.ID
	s.State = StateAwaitingAnimalType
	m.log.Info("bot client registered", map[string]any{"chat_id": s.ChatID, "client_id": client.ID})
	return m.animalTypePrompt(ctx, s, msgRegistered)
}

func (m *Machine) onAnimalType(ctx context.Context, s Session, text string) (Reply, error) {
	types, err := m.api.AnimalTypes(ctx)
	if err != nil {
		m.log.Warn("bot animal types failed", map[string]any{"chat_id": s.ChatID, "err": err})
		return Reply{Text: msgServiceUnavailable}, nil
	}

	for _, at := range types {
		if at.Name == text {
			s.AnimalTypeID = at.ID
			s.AnimalTypeName = at.Name
			s.State = StateAwaitingSlot
			return m.slotPrompt(ctx, s, "")
		}
	}
	return Reply{Text: msgUnknownAnimalType, Keyboard: animalTypeNames(types)}, nil
}

func (m *Machine) onSlot(ctx context.Context, s Session, text string) (Reply, error) {
	_, err := m.api.Book(ctx, BookRequest{
		ClientID:        s.ClientID,
		AppointmentDate: text,
		AnimalTypeID:    s.AnimalTypeID,
	})
	if err != nil {
		if rej, ok := AsRejected(err); ok {
			return m.slotPrompt(ctx, s, rej.Message)
		}
		m.log.Warn("bot booking failed", map[string]any{"chat_id": s.ChatID, "err": err})
		return Reply{Text: msgServiceUnavailable}, nil
	}

	s.State = StateDone
	m.log.Info("bot appointment booked", map[string]any{
		"chat_id":     s.ChatID,
		"client_id":   s.ClientID,
		"animal_type": s.AnimalTypeID,
		"date":        text,
	})
	return m.save(ctx, s, Reply{Text: fmt.Sprintf(msgBooked, text), RemoveKeyboard: true})
}

func (m *Machine) animalTypePrompt(ctx context.Context, s Session, lead string) (Reply, error) {
	types, err := m.api.AnimalTypes(ctx)
	if err != nil {
		m.log.Warn("bot animal types failed", map[string]any{"chat_id": s.ChatID, "err": err})
		return m.save(ctx, s, Reply{Text: lead + "\n" + msgServiceUnavailable})
	}
	if len(types) == 0 {
		return m.save(ctx, s, Reply{Text: lead + "\n" + msgNoAnimalTypes, RemoveKeyboard: true})
	}
	return m.save(ctx, s, Reply{Text: lead + "\n" + msgChooseAnimalType, Keyboard: animalTypeNames(types)})
}

// slotPrompt guarda la sesión y ofrece los slots libres; lead es un aviso opcional previo.
func (m *Machine) slotPrompt(ctx context.Context, s Session, lead string) (Reply, error) {
	prefix := ""
	if lead != "" {
		prefix = lead + "\n"
	}

	slots, err := m.api.FreeSlots(ctx)
	if err != nil {
		m.log.Warn("bot free slots failed", map[string]any{"chat_id": s.ChatID, "err": err})
		return m.save(ctx, s, Reply{Text: prefix + msgServiceUnavailable})
	}
	if len(slots) == 0 {
		s.State = StateDone
		return m.save(ctx, s, Reply{Text: prefix + msgNoSlots, RemoveKeyboard: true})
	}
	return m.save(ctx, s, Reply{Text: prefix + msgChooseSlot, Keyboard: slots})
}

func (m *Machine) save(ctx context.Context, s Session, r Reply) (Reply, error) {
	s.UpdatedAt = m.now()
	if err := m.sessions.Save(ctx, s); err != nil {
		return Reply{}, fmt.Errorf("save session: %w", err)
	}
	return r, nil
}

func animalTypeNames(types []AnimalType) []string {
	out := make([]string, 0, len(types))
	for _, at := range types {
		out = append(out, at.Name)
	}
	return out
}

package bot

import (
	"context"
	"errors"
	"time"
)

type State string

const (
	StateAwaitingFirstName  State = "awaiting_first_name"
	StateAwaitingLastName   State = "awaiting_last_name"
	StateAwaitingPhone      State = "awaiting_phone"
	StateAwaitingAnimalType State = "awaiting_animal_type"
	StateAwaitingSlot       State = "awaiting_slot"
	StateDone               State = "done"
)

// Session es la conversación de un chat; se persiste entre mensajes.
type Session struct {
	ChatID         int64     `json:"chat_id"`
	State          State     `json:"state"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	ClientID       int64     `json:"client_id,omitempty"`
	AnimalTypeID   int64     `json:"animal_type_id,omitempty"`
	AnimalTypeName string    `json:"animal_type_name,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

var ErrSessionNotFound = errors.New("session not found")

type SessionStore interface {
	// Get devuelve ErrSessionNotFound si el chat no tiene sesión (o expiró).
	Get(ctx context.Context, chatID int64) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, chatID int64) error
}

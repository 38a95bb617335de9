package clients

import "time"

// Client es el dueño de la mascota que reserva turnos.
type Client struct {
	ID    int64
	Login string // token único; generado si no viene en el registro

	FirstName string
	LastName  string
	Phone     string // E.164 normalizado

	TelegramChatID string // opcional, solo dígitos

	CreatedAt time.Time
	UpdatedAt time.Time
}

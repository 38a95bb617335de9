package appointments

import "time"

// Appointment reserva un slot para una categoría de animal.
// Como mucho una activa por (Date, AnimalTypeID).
type Appointment struct {
	ID           string
	ClientID     int64
	AnimalTypeID int64
	Date         time.Time // granularidad de minuto

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

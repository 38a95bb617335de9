package appointments

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("appointment not found")
	// ErrDuplicate lo devuelve el storage cuando ya hay una cita activa
	// con la misma fecha y categoría.
	ErrDuplicate = errors.New("active appointment already exists for slot")
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ExistsActive(ctx context.Context, date time.Time, animalTypeID int64) (bool, error)

	// ListActiveTimestamps devuelve las fechas ocupadas en [from, to), todas las categorías.
	ListActiveTimestamps(ctx context.Context, from, to time.Time) ([]time.Time, error)

	// List devuelve activas e inactivas en [from, to), ordenadas por fecha.
	List(ctx context.Context, from, to time.Time) ([]Appointment, error)

	Deactivate(ctx context.Context, id string, at time.Time) (Appointment, error)
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"vet-clinic-booking/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

// Create verifica e inserta bajo el mismo lock: equivale al índice único
// parcial (appointment_date, animal_type_id) WHERE is_active de Postgres.
func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	if a.IsActive && r.activeAt(a.Date, a.AnimalTypeID) {
		return appointments.ErrDuplicate
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) ExistsActive(ctx context.Context, date time.Time, animalTypeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.activeAt(date, animalTypeID), nil
}

func (r *appointmentRepo) ListActiveTimestamps(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]time.Time, 0)
	for _, a := range r.byID {
		if a.IsActive && inRange(a.Date, from, to) {
			out = append(out, a.Date)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (r *appointmentRepo) List(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if inRange(a.Date, from, to) {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].AnimalTypeID < out[j].AnimalTypeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *appointmentRepo) Deactivate(ctx context.Context, id string, at time.Time) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	a.IsActive = false
	a.UpdatedAt = at
	r.byID[id] = a
	return a, nil
}

func (r *appointmentRepo) activeAt(date time.Time, animalTypeID int64) bool {
	for _, a := range r.byID {
		if a.IsActive && a.AnimalTypeID == animalTypeID && a.Date.Equal(date) {
			return true
		}
	}
	return false
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

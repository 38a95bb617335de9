package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vet-clinic-booking/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `id, client_id, animal_type_id, appointment_date, is_active, created_at, updated_at`

// Create confía en el índice único parcial appointments_active_slot_uidx
// para rechazar dos citas activas en el mismo slot y categoría.
func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, client_id, animal_type_id, appointment_date,
			is_active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.ClientID,
		a.AnimalTypeID,
		a.Date,
		a.IsActive,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return appointments.ErrDuplicate
	}
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

func (r *AppointmentsRepo) ExistsActive(ctx context.Context, date time.Time, animalTypeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE appointment_date = $1 AND animal_type_id = $2 AND is_active
		)
	`, date, animalTypeID).Scan(&exists)
	return exists, err
}

func (r *AppointmentsRepo) ListActiveTimestamps(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT appointment_date
		FROM appointments
		WHERE is_active AND appointment_date >= $1 AND appointment_date < $2
		ORDER BY appointment_date ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) List(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE appointment_date >= $1 AND appointment_date < $2
		ORDER BY appointment_date ASC, animal_type_id ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Deactivate(ctx context.Context, id string, at time.Time) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE appointments
		SET is_active = false, updated_at = $2
		WHERE id = $1
		RETURNING `+appointmentColumns,
		id, at,
	)
	return scanAppointment(row)
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	if err := s.Scan(
		&a.ID,
		&a.ClientID,
		&a.AnimalTypeID,
		&a.Date,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

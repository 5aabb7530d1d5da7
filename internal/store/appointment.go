package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"booking-api/internal/model"
)

const appointmentCols = `id, phone, name, service, date, time, notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := row.Scan(&a.ID, &a.Phone, &a.Name, &a.Service, &a.Date, &a.Time,
		&a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpsertAppointment fully replaces the record for a.Phone, creating it when
// absent. Repeated submissions overwrite; the id stays stable.
func (s *Store) UpsertAppointment(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	return upsertAppointment(ctx, s.pool, a)
}

func upsertAppointment(ctx context.Context, q querier, a *model.Appointment) (*model.Appointment, error) {
	return scanAppointment(q.QueryRow(ctx,
		`INSERT INTO appointments (id, phone, name, service, date, time, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (phone) DO UPDATE
		 SET name = EXCLUDED.name, service = EXCLUDED.service,
		     date = EXCLUDED.date, time = EXCLUDED.time,
		     notes = EXCLUDED.notes, updated_at = NOW()
		 RETURNING `+appointmentCols,
		a.ID, a.Phone, a.Name, a.Service, a.Date, a.Time, a.Notes,
	))
}

func (s *Store) AppointmentByPhone(ctx context.Context, phone string) (*model.Appointment, error) {
	return scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE phone = $1`, phone))
}

// UpdateAppointmentByPhone replaces the mutable fields of an existing
// record. ErrNotFound when no appointment exists for a.Phone.
func (s *Store) UpdateAppointmentByPhone(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	return updateAppointmentByPhone(ctx, s.pool, a)
}

func updateAppointmentByPhone(ctx context.Context, q querier, a *model.Appointment) (*model.Appointment, error) {
	return scanAppointment(q.QueryRow(ctx,
		`UPDATE appointments
		 SET name = $2, service = $3, date = $4, time = $5, notes = $6, updated_at = NOW()
		 WHERE phone = $1
		 RETURNING `+appointmentCols,
		a.Phone, a.Name, a.Service, a.Date, a.Time, a.Notes,
	))
}

// DeleteAppointmentByPhone removes and returns the prior record.
// ErrNotFound when none existed.
func (s *Store) DeleteAppointmentByPhone(ctx context.Context, phone string) (*model.Appointment, error) {
	return deleteAppointmentByPhone(ctx, s.pool, phone)
}

func deleteAppointmentByPhone(ctx context.Context, q querier, phone string) (*model.Appointment, error) {
	return scanAppointment(q.QueryRow(ctx,
		`DELETE FROM appointments WHERE phone = $1 RETURNING `+appointmentCols, phone))
}

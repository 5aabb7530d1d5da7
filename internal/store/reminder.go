package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"booking-api/internal/model"
)

const reminderCols = `id, appointment_id, alert_time, status, created_at, updated_at`

func scanReminder(row pgx.Row) (*model.Reminder, error) {
	r := &model.Reminder{}
	err := row.Scan(&r.ID, &r.AppointmentID, &r.AlertTime, &r.Status,
		&r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UpsertReminder creates the reminder for an appointment or, when one
// already exists, replaces its alert time and resets status to pending.
func (s *Store) UpsertReminder(ctx context.Context, r *model.Reminder) (*model.Reminder, error) {
	return upsertReminder(ctx, s.pool, r)
}

func upsertReminder(ctx context.Context, q querier, r *model.Reminder) (*model.Reminder, error) {
	return scanReminder(q.QueryRow(ctx,
		`INSERT INTO reminders (id, appointment_id, alert_time)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (appointment_id) DO UPDATE
		 SET alert_time = EXCLUDED.alert_time, status = 'pending', updated_at = NOW()
		 RETURNING `+reminderCols,
		r.ID, r.AppointmentID, r.AlertTime,
	))
}

// UpdateReminderByAppointmentID replaces the alert time and resets status
// to pending. ErrNotFound when the appointment has no reminder.
func (s *Store) UpdateReminderByAppointmentID(ctx context.Context, appointmentID string, alertTime time.Time) (*model.Reminder, error) {
	return scanReminder(s.pool.QueryRow(ctx,
		`UPDATE reminders
		 SET alert_time = $2, status = 'pending', updated_at = NOW()
		 WHERE appointment_id = $1
		 RETURNING `+reminderCols,
		appointmentID, alertTime,
	))
}

func (s *Store) ReminderByAppointmentID(ctx context.Context, appointmentID string) (*model.Reminder, error) {
	return scanReminder(s.pool.QueryRow(ctx,
		`SELECT `+reminderCols+` FROM reminders WHERE appointment_id = $1`, appointmentID))
}

// DeleteReminderByAppointmentID is a no-op when no reminder exists.
func (s *Store) DeleteReminderByAppointmentID(ctx context.Context, appointmentID string) error {
	return deleteReminderByAppointmentID(ctx, s.pool, appointmentID)
}

func deleteReminderByAppointmentID(ctx context.Context, q querier, appointmentID string) error {
	_, err := q.Exec(ctx, `DELETE FROM reminders WHERE appointment_id = $1`, appointmentID)
	return err
}

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"booking-api/internal/model"
)

// Booking-level sequences. Each runs in a single transaction so the
// appointment and its reminder cannot diverge: a reminder exists iff its
// appointment does, and its alert time matches the appointment's current
// date and time at every commit point.

// SubmitBooking upserts the appointment for a.Phone and creates (or
// refreshes) its reminder with the given alert time.
func (s *Store) SubmitBooking(ctx context.Context, a *model.Appointment, alertTime time.Time) (*model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	apt, err := upsertAppointment(ctx, tx, a)
	if err != nil {
		return nil, err
	}
	if _, err := upsertReminder(ctx, tx, &model.Reminder{
		ID:            uuid.New().String(),
		AppointmentID: apt.ID,
		AlertTime:     alertTime,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return apt, nil
}

// ModifyAppointment replaces the fields of the appointment for a.Phone and
// recomputes its reminder, resetting the status to pending. ErrNotFound
// when the phone has no appointment; nothing is written in that case.
func (s *Store) ModifyAppointment(ctx context.Context, a *model.Appointment, alertTime time.Time) (*model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	apt, err := updateAppointmentByPhone(ctx, tx, a)
	if err != nil {
		return nil, err
	}
	// upsert rather than update: recreates a reminder that went missing,
	// restoring the invariant instead of perpetuating the gap
	if _, err := upsertReminder(ctx, tx, &model.Reminder{
		ID:            uuid.New().String(),
		AppointmentID: apt.ID,
		AlertTime:     alertTime,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return apt, nil
}

// CancelAppointment deletes the appointment for phone together with its
// reminder and returns the removed appointment. ErrNotFound when the phone
// has no appointment.
func (s *Store) CancelAppointment(ctx context.Context, phone string) (*model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	apt, err := deleteAppointmentByPhone(ctx, tx, phone)
	if err != nil {
		return nil, err
	}
	if err := deleteReminderByAppointmentID(ctx, tx, apt.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return apt, nil
}

package handler

import (
	"context"
	"time"

	"booking-api/internal/model"
	"booking-api/internal/token"
)

// BookingStore is the slice of the storage layer the HTTP handlers need.
// *store.Store satisfies it; tests plug in an in-memory fake.
type BookingStore interface {
	AppointmentByPhone(ctx context.Context, phone string) (*model.Appointment, error)
	SubmitBooking(ctx context.Context, a *model.Appointment, alertTime time.Time) (*model.Appointment, error)
	ModifyAppointment(ctx context.Context, a *model.Appointment, alertTime time.Time) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, phone string) (*model.Appointment, error)
}

type Handler struct {
	store  BookingStore
	tokens token.Store
}

func New(st BookingStore, tokens token.Store) *Handler {
	return &Handler{store: st, tokens: tokens}
}

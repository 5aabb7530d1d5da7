package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"booking-api/internal/model"
	"booking-api/internal/store"
)

// Wall-clock layouts accepted for appointment date+time. No timezone math:
// the host's local zone is the business's zone.
const (
	dateTimeLayout    = "2006-01-02T15:04"
	dateTimeLayoutSec = "2006-01-02T15:04:05"
)

const alertLead = time.Hour

// alertTime derives the reminder alert from the appointment's wall-clock
// date and time: one hour before the appointment. Malformed input is
// rejected here, before anything is written.
func alertTime(date, clock string) (time.Time, error) {
	raw := date + "T" + clock
	t, err := time.ParseInLocation(dateTimeLayout, raw, time.Local)
	if err != nil {
		t, err = time.ParseInLocation(dateTimeLayoutSec, raw, time.Local)
	}
	if err != nil {
		return time.Time{}, badRequest("invalid date or time: %q %q", date, clock)
	}
	return t.Add(-alertLead), nil
}

type bookingRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Time    string `json:"time"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
}

func (b *bookingRequest) missing() []string {
	var out []string
	for _, f := range []struct{ name, val string }{
		{"name", b.Name},
		{"phone", b.Phone},
		{"service", b.Service},
		{"time", b.Time},
		{"date", b.Date},
	} {
		if strings.TrimSpace(f.val) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

func (b *bookingRequest) appointment() *model.Appointment {
	return &model.Appointment{
		ID:      uuid.New().String(),
		Phone:   b.Phone,
		Name:    b.Name,
		Service: b.Service,
		Date:    b.Date,
		Time:    b.Time,
		Notes:   b.Notes,
	}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "booking api is running")
}

func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) error {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body")
	}
	if miss := req.missing(); len(miss) > 0 {
		return badRequest("missing required fields: %s", strings.Join(miss, ", "))
	}
	alert, err := alertTime(req.Date, req.Time)
	if err != nil {
		return err
	}

	apt, err := h.store.SubmitBooking(r.Context(), req.appointment(), alert)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "booking confirmed",
		"appointment": apt,
	})
	return nil
}

func (h *Handler) ModifyAppointment(w http.ResponseWriter, r *http.Request) error {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body")
	}
	if miss := req.missing(); len(miss) > 0 {
		return badRequest("missing required fields: %s", strings.Join(miss, ", "))
	}
	alert, err := alertTime(req.Date, req.Time)
	if err != nil {
		return err
	}

	apt, err := h.store.ModifyAppointment(r.Context(), req.appointment(), alert)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment updated",
		"appointment": apt,
	})
	return nil
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return badRequest("phone is required")
	}

	if _, err := h.store.CancelAppointment(r.Context(), req.Phone); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "appointment cancelled"})
	return nil
}

// CheckPhone is the boundary existence check: absence is a 200 with
// exists=false, not a 404.
func (h *Handler) CheckPhone(w http.ResponseWriter, r *http.Request) error {
	phone := chi.URLParam(r, "phone")

	apt, err := h.store.AppointmentByPhone(r.Context(), phone)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{"exists": false})
		return nil
	}
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{"exists": true, "appointment": apt})
	return nil
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) error {
	apt, err := h.store.AppointmentByPhone(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, apt)
	return nil
}

func (h *Handler) Confirmation(w http.ResponseWriter, r *http.Request) error {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		return badRequest("phone query parameter is required")
	}

	apt, err := h.store.AppointmentByPhone(r.Context(), phone)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, apt)
	return nil
}

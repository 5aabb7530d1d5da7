package model

import "time"

// Reminder statuses. "sent" is written by the dispatch process, which lives
// outside this service; everything here only ever resets to pending.
const (
	ReminderPending = "pending"
	ReminderSent    = "sent"
)

// Appointment is the primary booking record. Phone is globally unique:
// at most one appointment exists per phone at any time.
type Appointment struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Reminder tracks when to alert about an appointment. AppointmentID is a
// weak back-reference; the booking transactions keep the two records in
// lockstep.
type Reminder struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	AlertTime     time.Time `json:"alertTime"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

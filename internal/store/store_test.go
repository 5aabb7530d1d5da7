package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"booking-api/internal/model"
	"booking-api/internal/store"
)

func setup(t *testing.T) (*store.Store, *pgxpool.Pool) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	if migration, err := os.ReadFile("../../db/migrations/001_init.sql"); err == nil {
		_, _ = pool.Exec(context.Background(), string(migration))
	}
	return store.New(pool), pool
}

func testPhone() string {
	return "test-" + uuid.New().String()[:8]
}

func testAppointment(phone string) *model.Appointment {
	return &model.Appointment{
		ID:      uuid.New().String(),
		Phone:   phone,
		Name:    "Test User",
		Service: "cut",
		Date:    "2024-01-10",
		Time:    "14:00",
		Notes:   "test",
	}
}

func alertFor(a *model.Appointment) time.Time {
	t, _ := time.ParseInLocation("2006-01-02T15:04", a.Date+"T"+a.Time, time.Local)
	return t.Add(-time.Hour)
}

// ----- repository primitives -----

func TestUpsertAppointment(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	phone := testPhone()

	a := testAppointment(phone)
	created, err := st.UpsertAppointment(ctx, a)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.ID != a.ID || created.Phone != phone {
		t.Errorf("created: %+v", created)
	}

	// full replace, id stable
	replacement := testAppointment(phone)
	replacement.Service = "color"
	replaced, err := st.UpsertAppointment(ctx, replacement)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if replaced.ID != created.ID {
		t.Errorf("id changed on resubmission: %s vs %s", replaced.ID, created.ID)
	}
	if replaced.Service != "color" {
		t.Errorf("second submission should win: %s", replaced.Service)
	}
}

func TestUpdateAppointmentByPhoneNotFound(t *testing.T) {
	st, _ := setup(t)

	_, err := st.UpdateAppointmentByPhone(context.Background(), testAppointment(testPhone()))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAppointmentByPhone(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	phone := testPhone()

	if _, err := st.DeleteAppointmentByPhone(ctx, phone); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	a, _ := st.UpsertAppointment(ctx, testAppointment(phone))
	prior, err := st.DeleteAppointmentByPhone(ctx, phone)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if prior.ID != a.ID {
		t.Errorf("expected prior record back, got %+v", prior)
	}
	if _, err := st.AppointmentByPhone(ctx, phone); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("record still present after delete")
	}
}

func TestDeleteReminderNoop(t *testing.T) {
	st, _ := setup(t)

	if err := st.DeleteReminderByAppointmentID(context.Background(), uuid.New().String()); err != nil {
		t.Fatalf("delete of absent reminder should be a no-op: %v", err)
	}
}

// ----- booking transactions -----

func TestSubmitBookingCreatesReminder(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()

	a := testAppointment(testPhone())
	apt, err := st.SubmitBooking(ctx, a, alertFor(a))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	rem, err := st.ReminderByAppointmentID(ctx, apt.ID)
	if err != nil {
		t.Fatalf("reminder: %v", err)
	}
	if !rem.AlertTime.Equal(alertFor(a)) {
		t.Errorf("alert time: got %v, want %v", rem.AlertTime, alertFor(a))
	}
	if rem.Status != model.ReminderPending {
		t.Errorf("status: got %s", rem.Status)
	}
}

func TestResubmitKeepsSingleReminder(t *testing.T) {
	st, pool := setup(t)
	ctx := context.Background()
	phone := testPhone()

	first := testAppointment(phone)
	apt, err := st.SubmitBooking(ctx, first, alertFor(first))
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := testAppointment(phone)
	second.Time = "16:00"
	apt2, err := st.SubmitBooking(ctx, second, alertFor(second))
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if apt2.ID != apt.ID {
		t.Errorf("id changed on resubmission")
	}

	var count int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reminders WHERE appointment_id = $1`, apt.ID,
	).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 reminder, got %d", count)
	}

	rem, _ := st.ReminderByAppointmentID(ctx, apt.ID)
	if !rem.AlertTime.Equal(alertFor(second)) {
		t.Errorf("alert not recomputed: %v", rem.AlertTime)
	}
}

func TestModifyAppointmentNotFound(t *testing.T) {
	st, _ := setup(t)

	a := testAppointment(testPhone())
	_, err := st.ModifyAppointment(context.Background(), a, alertFor(a))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestModifyAppointmentResetsReminder(t *testing.T) {
	st, pool := setup(t)
	ctx := context.Background()
	phone := testPhone()

	a := testAppointment(phone)
	apt, err := st.SubmitBooking(ctx, a, alertFor(a))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// simulate dispatch having sent the reminder
	if _, err := pool.Exec(ctx,
		`UPDATE reminders SET status = 'sent' WHERE appointment_id = $1`, apt.ID,
	); err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	update := testAppointment(phone)
	update.Time = "15:00"
	if _, err := st.ModifyAppointment(ctx, update, alertFor(update)); err != nil {
		t.Fatalf("modify: %v", err)
	}

	rem, err := st.ReminderByAppointmentID(ctx, apt.ID)
	if err != nil {
		t.Fatalf("reminder: %v", err)
	}
	if rem.Status != model.ReminderPending {
		t.Errorf("status not reset: %s", rem.Status)
	}
	if !rem.AlertTime.Equal(alertFor(update)) {
		t.Errorf("alert not recomputed: %v", rem.AlertTime)
	}
}

func TestCancelAppointment(t *testing.T) {
	st, _ := setup(t)
	ctx := context.Background()
	phone := testPhone()

	if _, err := st.CancelAppointment(ctx, phone); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	a := testAppointment(phone)
	apt, err := st.SubmitBooking(ctx, a, alertFor(a))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	removed, err := st.CancelAppointment(ctx, phone)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if removed.ID != apt.ID {
		t.Errorf("expected removed record back")
	}

	if _, err := st.AppointmentByPhone(ctx, phone); !errors.Is(err, store.ErrNotFound) {
		t.Error("appointment survived cancel")
	}
	if _, err := st.ReminderByAppointmentID(ctx, apt.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("reminder survived cancel")
	}
}

func TestConcurrentSubmitSamePhone(t *testing.T) {
	st, pool := setup(t)
	ctx := context.Background()
	phone := testPhone()

	const n = 10
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := testAppointment(phone)
			a.Notes = fmt.Sprintf("attempt-%d", i)
			_, err := st.SubmitBooking(ctx, a, alertFor(a))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	for err := range results {
		if err != nil {
			t.Errorf("concurrent submit: %v", err)
		}
	}

	var appts, rems int
	pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE phone = $1`, phone).Scan(&appts)
	pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reminders r JOIN appointments a ON a.id = r.appointment_id WHERE a.phone = $1`,
		phone).Scan(&rems)
	if appts != 1 {
		t.Errorf("expected 1 appointment, got %d", appts)
	}
	if rems != 1 {
		t.Errorf("expected 1 reminder, got %d", rems)
	}
}

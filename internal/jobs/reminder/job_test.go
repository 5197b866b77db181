package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeSettings struct{}

func (fakeSettings) GetRateConfig(_ context.Context) (*domain.RateConfig, error) {
	return domain.DefaultRateConfig(), nil
}

type fakeReservations struct {
	pending  []*domain.Reservation
	marked   []uuid.UUID
	deadline time.Time
}

func (r *fakeReservations) ListPendingForReminder(_ context.Context, olderThan time.Time) ([]*domain.Reservation, error) {
	r.deadline = olderThan
	return r.pending, nil
}

func (r *fakeReservations) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	r.marked = append(r.marked, id)
	return nil
}

type fakeNotifier struct {
	sent      []uuid.UUID
	remaining []int
	err       error
}

func (n *fakeNotifier) NotifyPendingReminder(_ context.Context, res *domain.Reservation, remainingHours int) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, res.ID)
	n.remaining = append(n.remaining, remainingHours)
	return nil
}

func TestJob_RunOnce_SendsReminders(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	res := &domain.Reservation{ID: uuid.New(), GuestName: "Иван", Status: domain.StatusPending}

	reservations := &fakeReservations{pending: []*domain.Reservation{res}}
	notifier := &fakeNotifier{}

	job := New(reservations, fakeSettings{}, notifier, fixedTime{t: now}, nopLogger{}, time.Minute, 8)
	job.RunOnce(context.Background())

	// Порог выборки — reminder_after_hours назад
	assert.Equal(t, now.Add(-8*time.Hour), reservations.deadline)

	assert.Equal(t, []uuid.UUID{res.ID}, notifier.sent)
	// До автоотмены остается pending_cancel_hours - reminder_after_hours
	assert.Equal(t, []int{16}, notifier.remaining)
	assert.Equal(t, []uuid.UUID{res.ID}, reservations.marked)
}

func TestJob_RunOnce_FailedSendNotMarked(t *testing.T) {
	res := &domain.Reservation{ID: uuid.New(), Status: domain.StatusPending}

	reservations := &fakeReservations{pending: []*domain.Reservation{res}}
	notifier := &fakeNotifier{err: errors.New("telegram unavailable")}

	job := New(reservations, fakeSettings{}, notifier, fixedTime{t: time.Now()}, nopLogger{}, time.Minute, 8)
	job.RunOnce(context.Background())

	// Отметка не ставится: напоминание уйдет при следующем проходе
	assert.Empty(t, reservations.marked)
}

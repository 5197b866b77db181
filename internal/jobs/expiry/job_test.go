package expiry

import (
	"context"
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

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeSettings struct{}

func (fakeSettings) GetRateConfig(_ context.Context) (*domain.RateConfig, error) {
	return domain.DefaultRateConfig(), nil
}

// fakeReservations отдает просроченные брони и записывает смены статусов
type fakeReservations struct {
	expired []*domain.Reservation
	// statuses имитирует условную смену статуса в UpdateStatusIf
	statuses map[uuid.UUID]domain.ReservationStatus
	deadline time.Time
}

func (r *fakeReservations) ListExpiredPending(_ context.Context, olderThan time.Time) ([]*domain.Reservation, error) {
	r.deadline = olderThan
	return r.expired, nil
}

func (r *fakeReservations) UpdateStatusIf(_ context.Context, id uuid.UUID, from, to domain.ReservationStatus) (bool, error) {
	if r.statuses[id] != from {
		return false, nil
	}
	r.statuses[id] = to
	return true, nil
}

type fakeBlocked struct {
	deletedFor []uuid.UUID
}

func (r *fakeBlocked) DeleteByReservation(_ context.Context, id uuid.UUID) (int64, error) {
	r.deletedFor = append(r.deletedFor, id)
	return 2, nil
}

type fakeNotifier struct {
	cancelled []uuid.UUID
}

func (n *fakeNotifier) NotifyAutoCancelled(_ context.Context, res *domain.Reservation) error {
	n.cancelled = append(n.cancelled, res.ID)
	return nil
}

func TestJob_RunOnce_CancelsExpired(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	stale := &domain.Reservation{ID: uuid.New(), GuestName: "Иван", Status: domain.StatusPending}

	reservations := &fakeReservations{
		expired:  []*domain.Reservation{stale},
		statuses: map[uuid.UUID]domain.ReservationStatus{stale.ID: domain.StatusPending},
	}
	blocked := &fakeBlocked{}
	notifier := &fakeNotifier{}

	job := New(reservations, blocked, fakeSettings{}, notifier, passthroughTx{},
		fixedTime{t: now}, nopLogger{}, time.Minute)
	job.RunOnce(context.Background())

	// Порог — pending_cancel_hours (24) назад от текущего момента
	assert.Equal(t, now.Add(-24*time.Hour), reservations.deadline)

	assert.Equal(t, domain.StatusCancelled, reservations.statuses[stale.ID])
	assert.Equal(t, []uuid.UUID{stale.ID}, blocked.deletedFor)
	assert.Equal(t, []uuid.UUID{stale.ID}, notifier.cancelled)
}

func TestJob_RunOnce_SkipsConcurrentlyPaid(t *testing.T) {
	// Бронь попала в выборку, но между выборкой и отменой её успели оплатить
	paid := &domain.Reservation{ID: uuid.New(), GuestName: "Мария", Status: domain.StatusPending}

	reservations := &fakeReservations{
		expired:  []*domain.Reservation{paid},
		statuses: map[uuid.UUID]domain.ReservationStatus{paid.ID: domain.StatusPaid},
	}
	blocked := &fakeBlocked{}
	notifier := &fakeNotifier{}

	job := New(reservations, blocked, fakeSettings{}, notifier, passthroughTx{},
		fixedTime{t: time.Now()}, nopLogger{}, time.Minute)
	job.RunOnce(context.Background())

	assert.Equal(t, domain.StatusPaid, reservations.statuses[paid.ID])
	assert.Empty(t, blocked.deletedFor)
	assert.Empty(t, notifier.cancelled)
}

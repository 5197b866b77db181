package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// passthroughTx выполняет fn напрямую и отмечает откат при ошибке
type passthroughTx struct {
	rolledBack bool
}

func (tx *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		tx.rolledBack = true
		return err
	}
	return nil
}

type fakeSettings struct{}

func (fakeSettings) GetRateConfig(_ context.Context) (*domain.RateConfig, error) {
	return domain.DefaultRateConfig(), nil
}

type fakeReservationRepo struct {
	created *domain.Reservation
	err     error
}

func (r *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if r.err != nil {
		return nil, r.err
	}
	clone := *res
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	r.created = &clone
	return &clone, nil
}

type fakeBlockedRepo struct {
	conflicts            []types.Date
	blocked              []*domain.BlockedDate
	lockedFrom, lockedTo types.Date
}

func (r *fakeBlockedRepo) LockRange(_ context.Context, from, to types.Date) ([]types.Date, error) {
	r.lockedFrom, r.lockedTo = from, to
	return r.conflicts, nil
}

func (r *fakeBlockedRepo) Block(_ context.Context, b *domain.BlockedDate) error {
	r.blocked = append(r.blocked, b)
	return nil
}

type fakeNotifier struct {
	notified []*domain.Reservation
	err      error
}

func (n *fakeNotifier) NotifyNewReservation(_ context.Context, res *domain.Reservation) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, res)
	return nil
}

func newUseCaseWithFakes(
	reservations *fakeReservationRepo,
	blocked *fakeBlockedRepo,
	notifier *fakeNotifier,
	tx *passthroughTx,
) *UseCase {
	return NewUseCase(reservations, blocked, fakeSettings{}, notifier, tx, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	reservations := &fakeReservationRepo{}
	blocked := &fakeBlockedRepo{}
	notifier := &fakeNotifier{}
	uc := newUseCaseWithFakes(reservations, blocked, notifier, &passthroughTx{})

	resp, err := uc.Execute(context.Background(), &Request{
		GuestName:  "  Иван Петров  ",
		Phone:      "+79001234567",
		GuestCount: 4,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-19",
	})
	require.NoError(t, err)

	// Имя сохраняется без краевых пробелов
	assert.Equal(t, "Иван Петров", resp.GuestName)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Диапазон блокировки совпадает с запросом
	assert.Equal(t, types.Date("2026-03-16"), blocked.lockedFrom)
	assert.Equal(t, types.Date("2026-03-19"), blocked.lockedTo)

	// Заблокирована каждая ночь, день выезда свободен
	require.Len(t, blocked.blocked, 3)
	assert.Equal(t, types.Date("2026-03-16"), blocked.blocked[0].Date)
	assert.Equal(t, types.Date("2026-03-18"), blocked.blocked[2].Date)
	for _, b := range blocked.blocked {
		require.NotNil(t, b.ReservationID)
		assert.Equal(t, reservations.created.ID, *b.ReservationID)
	}

	// Предоплата равна полной стоимости
	require.NotNil(t, resp.Quote)
	assert.Equal(t, resp.Quote.TotalPrice, reservations.created.Prepayment)
	assert.Equal(t, 24, resp.PendingCancelHours)

	// Оператор уведомлен после коммита
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, reservations.created.ID, notifier.notified[0].ID)
}

func TestExecute_DatesConflict(t *testing.T) {
	reservations := &fakeReservationRepo{}
	blocked := &fakeBlockedRepo{conflicts: []types.Date{"2026-03-17"}}
	notifier := &fakeNotifier{}
	tx := &passthroughTx{}
	uc := newUseCaseWithFakes(reservations, blocked, notifier, tx)

	_, err := uc.Execute(context.Background(), &Request{
		GuestName:  "Иван Петров",
		Phone:      "+79001234567",
		GuestCount: 4,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-19",
	})
	assert.ErrorIs(t, err, ErrDatesConflict)

	// Транзакция откатилась, ничего не создано и никто не уведомлен
	assert.True(t, tx.rolledBack)
	assert.Nil(t, reservations.created)
	assert.Empty(t, blocked.blocked)
	assert.Empty(t, notifier.notified)
}

// racingBlockedRepo имитирует гонку двух бронирований на свободный диапазон:
// первая попытка видит свободные даты, но вставка обрывается сервером
// (FOR UPDATE нечего блокировать, и serialization failure поднимает PostgreSQL).
type racingBlockedRepo struct {
	lockCalls   int
	retryIsFree bool
	blocked     []*domain.BlockedDate
}

func (r *racingBlockedRepo) LockRange(_ context.Context, from, to types.Date) ([]types.Date, error) {
	r.lockCalls++
	if r.lockCalls == 1 || r.retryIsFree {
		return nil, nil
	}
	// Повтор видит даты, закоммиченные выигравшей транзакцией
	return []types.Date{from}, nil
}

func (r *racingBlockedRepo) Block(_ context.Context, b *domain.BlockedDate) error {
	if r.lockCalls == 1 {
		return fmt.Errorf("blockeddate repository: failed to execute query: Block - execute insert: %w",
			&pq.Error{Code: "40001"})
	}
	r.blocked = append(r.blocked, b)
	return nil
}

func TestExecute_ConcurrentRaceLoserGetsConflict(t *testing.T) {
	reservations := &fakeReservationRepo{}
	blocked := &racingBlockedRepo{}
	notifier := &fakeNotifier{}
	uc := NewUseCase(reservations, blocked, fakeSettings{}, notifier, &passthroughTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		GuestName:  "Иван Петров",
		Phone:      "+79001234567",
		GuestCount: 4,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-19",
	})

	// Проигравший получает конфликт дат, а не внутреннюю ошибку
	assert.ErrorIs(t, err, ErrDatesConflict)
	assert.NotErrorIs(t, err, ErrInternal)

	// Транзакция была перезапущена ровно один раз
	assert.Equal(t, 2, blocked.lockCalls)
	assert.Empty(t, blocked.blocked)
	assert.Empty(t, notifier.notified)
}

func TestExecute_RetryAfterTransientConflictSucceeds(t *testing.T) {
	reservations := &fakeReservationRepo{}
	blocked := &racingBlockedRepo{retryIsFree: true}
	notifier := &fakeNotifier{}
	uc := NewUseCase(reservations, blocked, fakeSettings{}, notifier, &passthroughTx{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		GuestName:  "Иван Петров",
		Phone:      "+79001234567",
		GuestCount: 4,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-19",
	})

	// Конфликт был с непересекающейся транзакцией: повтор проходит штатно
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 2, blocked.lockCalls)
	assert.Len(t, blocked.blocked, 3)
	assert.Len(t, notifier.notified, 1)
}

func TestExecute_TooManyGuests(t *testing.T) {
	uc := newUseCaseWithFakes(&fakeReservationRepo{}, &fakeBlockedRepo{}, &fakeNotifier{}, &passthroughTx{})

	_, err := uc.Execute(context.Background(), &Request{
		GuestName:  "Иван Петров",
		Phone:      "+79001234567",
		GuestCount: 31,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-19",
	})
	assert.ErrorIs(t, err, ErrTooManyGuests)
}

func TestExecute_NotifierFailureDoesNotFailBooking(t *testing.T) {
	reservations := &fakeReservationRepo{}
	notifier := &fakeNotifier{err: errors.New("telegram unavailable")}
	uc := newUseCaseWithFakes(reservations, &fakeBlockedRepo{}, notifier, &passthroughTx{})

	resp, err := uc.Execute(context.Background(), &Request{
		GuestName:  "Иван Петров",
		Phone:      "+79001234567",
		GuestCount: 4,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-18",
	})

	// Уведомление — best effort: бронь создана несмотря на сбой Telegram
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.NotNil(t, reservations.created)
}

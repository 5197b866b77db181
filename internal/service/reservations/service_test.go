package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesnoydomik/booking-service/internal/domain"
	reservationRepo "github.com/lesnoydomik/booking-service/internal/infra/storage/reservation"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeReservationRepo хранит бронирования в памяти
type fakeReservationRepo struct {
	items map[uuid.UUID]*domain.Reservation
}

func newFakeReservationRepo(items ...*domain.Reservation) *fakeReservationRepo {
	r := &fakeReservationRepo{items: make(map[uuid.UUID]*domain.Reservation)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID, _ bool) (*domain.Reservation, error) {
	res, ok := r.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *fakeReservationRepo) List(_ context.Context, limit, offset uint64) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	if offset >= uint64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReservationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	res, ok := r.items[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeBlockedRepo считает разблокировки по бронированию
type fakeBlockedRepo struct {
	deletedFor []uuid.UUID
}

func (r *fakeBlockedRepo) DeleteByReservation(_ context.Context, id uuid.UUID) (int64, error) {
	r.deletedFor = append(r.deletedFor, id)
	return 2, nil
}

func newReservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:         uuid.New(),
		GuestName:  "Иван Петров",
		Phone:      "+79001234567",
		GuestCount: 4,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-18",
		TotalPrice: 60000,
		Prepayment: 60000,
		Status:     status,
		CreatedAt:  time.Now(),
	}
}

func newTestService(repo *fakeReservationRepo, blocked *fakeBlockedRepo) *Service {
	return NewService(repo, blocked, passthroughTx{}, nopLogger{})
}

func TestService_UpdateStatus_PendingToPaid(t *testing.T) {
	res := newReservation(domain.StatusPending)
	repo := newFakeReservationRepo(res)
	blocked := &fakeBlockedRepo{}
	svc := newTestService(repo, blocked)

	updated, err := svc.UpdateStatus(context.Background(), res.ID, "PAID")
	require.NoError(t, err)

	assert.Equal(t, "PAID", updated.Status)
	// Оплата не трогает занятые даты
	assert.Empty(t, blocked.deletedFor)
}

func TestService_UpdateStatus_CancelUnblocksDates(t *testing.T) {
	res := newReservation(domain.StatusPaid)
	repo := newFakeReservationRepo(res)
	blocked := &fakeBlockedRepo{}
	svc := newTestService(repo, blocked)

	updated, err := svc.UpdateStatus(context.Background(), res.ID, "CANCELLED")
	require.NoError(t, err)

	assert.Equal(t, "CANCELLED", updated.Status)
	assert.Equal(t, []uuid.UUID{res.ID}, blocked.deletedFor)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	res := newReservation(domain.StatusConfirmed)
	repo := newFakeReservationRepo(res)
	svc := newTestService(repo, &fakeBlockedRepo{})

	_, err := svc.UpdateStatus(context.Background(), res.ID, "PAID")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Статус не изменился
	assert.Equal(t, domain.StatusConfirmed, repo.items[res.ID].Status)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	res := newReservation(domain.StatusPending)
	svc := newTestService(newFakeReservationRepo(res), &fakeBlockedRepo{})

	_, err := svc.UpdateStatus(context.Background(), res.ID, "PAYED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	svc := newTestService(newFakeReservationRepo(), &fakeBlockedRepo{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "PAID")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Purge_CancelledOnly(t *testing.T) {
	cancelled := newReservation(domain.StatusCancelled)
	active := newReservation(domain.StatusConfirmed)
	repo := newFakeReservationRepo(cancelled, active)
	blocked := &fakeBlockedRepo{}
	svc := newTestService(repo, blocked)

	require.NoError(t, svc.Purge(context.Background(), cancelled.ID))
	assert.NotContains(t, repo.items, cancelled.ID)

	err := svc.Purge(context.Background(), active.ID)
	assert.ErrorIs(t, err, ErrNotCancelled)
	assert.Contains(t, repo.items, active.ID)
}

func TestService_List_Pagination(t *testing.T) {
	repo := newFakeReservationRepo()
	for i := 0; i < 7; i++ {
		res := newReservation(domain.StatusPending)
		repo.items[res.ID] = res
	}
	svc := newTestService(repo, &fakeBlockedRepo{})

	page, err := svc.List(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Len(t, page.Reservations, 3)
	assert.Equal(t, int64(7), page.Pagination.Total)
	assert.Equal(t, int64(3), page.Pagination.Pages)

	// Некорректные параметры заменяются значениями по умолчанию
	page, err = svc.List(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPage, page.Pagination.Page)
	assert.Equal(t, domain.DefaultPageSize, page.Pagination.Limit)

	// Потолок размера страницы
	page, err = svc.List(context.Background(), 1, 100500)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, page.Pagination.Limit)
}

package availability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesnoydomik/booking-service/internal/domain"
	blockedDateRepo "github.com/lesnoydomik/booking-service/internal/infra/storage/blockeddate"
	"github.com/lesnoydomik/booking-service/pkg/ptr"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// fakeRepo хранит блокировки в памяти
type fakeRepo struct {
	items map[types.Date]*domain.BlockedDate
}

func newFakeRepo(items ...*domain.BlockedDate) *fakeRepo {
	r := &fakeRepo{items: make(map[types.Date]*domain.BlockedDate)}
	for _, it := range items {
		r.items[it.Date] = it
	}
	return r
}

func (r *fakeRepo) List(_ context.Context) ([]*domain.BlockedDate, error) {
	out := make([]*domain.BlockedDate, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeRepo) GetByDate(_ context.Context, date types.Date) (*domain.BlockedDate, error) {
	it, ok := r.items[date]
	if !ok {
		return nil, blockedDateRepo.ErrDateNotFound
	}
	return it, nil
}

func (r *fakeRepo) Block(_ context.Context, b *domain.BlockedDate) error {
	if _, ok := r.items[b.Date]; ok {
		// ON CONFLICT DO NOTHING
		return nil
	}
	r.items[b.Date] = b
	return nil
}

func (r *fakeRepo) DeleteManual(_ context.Context, date types.Date) (int64, error) {
	it, ok := r.items[date]
	if !ok {
		return 0, nil
	}
	if it.ReservationID != nil || (it.Source != nil && *it.Source == domain.SourceAvito) {
		return 0, nil
	}
	delete(r.items, date)
	return 1, nil
}

func (r *fakeRepo) ListLocalDates(_ context.Context) ([]types.Date, error) {
	out := make([]types.Date, 0, len(r.items))
	for d, it := range r.items {
		if it.Source != nil && *it.Source == domain.SourceAvito {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func newTestService(repo *fakeRepo) *Service {
	now := fixedTime{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return New(repo, now, nopLogger{}, "lesnoy-domik.ru", "Лесной Домик — Занятость")
}

func manualBlock(date types.Date) *domain.BlockedDate {
	return &domain.BlockedDate{ID: uuid.New(), Date: date, Reason: domain.ManualBlockReason}
}

func reservationBlock(date types.Date) *domain.BlockedDate {
	id := uuid.New()
	return &domain.BlockedDate{ID: uuid.New(), Date: date, Reason: "Бронирование", ReservationID: &id}
}

func externalBlock(date types.Date) *domain.BlockedDate {
	return &domain.BlockedDate{
		ID:     uuid.New(),
		Date:   date,
		Reason: domain.AvitoBlockReason,
		Source: ptr.Ptr(domain.SourceAvito),
	}
}

func TestService_ListBlocked_Origins(t *testing.T) {
	repo := newFakeRepo(
		manualBlock("2026-03-10"),
		reservationBlock("2026-03-11"),
		externalBlock("2026-03-12"),
	)
	svc := newTestService(repo)

	infos, err := svc.ListBlocked(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 3)

	origins := make(map[types.Date]string)
	for _, info := range infos {
		origins[info.Date] = info.Origin
	}
	assert.Equal(t, "manual", origins["2026-03-10"])
	assert.Equal(t, "reservation", origins["2026-03-11"])
	assert.Equal(t, "external", origins["2026-03-12"])
}

func TestService_BlockDate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.BlockDate(ctx, "2026-03-10", ""))
	require.Contains(t, repo.items, types.Date("2026-03-10"))
	assert.Equal(t, domain.ManualBlockReason, repo.items["2026-03-10"].Reason)

	// Повторная блокировка той же даты не ошибка
	require.NoError(t, svc.BlockDate(ctx, "2026-03-10", "ремонт"))

	err := svc.BlockDate(ctx, "10.03.2026", "")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_UnblockDate(t *testing.T) {
	repo := newFakeRepo(
		manualBlock("2026-03-10"),
		reservationBlock("2026-03-11"),
		externalBlock("2026-03-12"),
	)
	svc := newTestService(repo)
	ctx := context.Background()

	t.Run("ручная блокировка снимается", func(t *testing.T) {
		result, err := svc.UnblockDate(ctx, "2026-03-10")
		require.NoError(t, err)
		assert.True(t, result.Deleted)
		assert.NotContains(t, repo.items, types.Date("2026-03-10"))
	})

	t.Run("дата бронирования защищена", func(t *testing.T) {
		_, err := svc.UnblockDate(ctx, "2026-03-11")
		assert.ErrorIs(t, err, ErrDateProtected)
		assert.Contains(t, repo.items, types.Date("2026-03-11"))
	})

	t.Run("внешняя дата защищена", func(t *testing.T) {
		_, err := svc.UnblockDate(ctx, "2026-03-12")
		assert.ErrorIs(t, err, ErrDateProtected)
	})

	t.Run("несуществующая дата не ошибка", func(t *testing.T) {
		result, err := svc.UnblockDate(ctx, "2026-07-01")
		require.NoError(t, err)
		assert.False(t, result.Deleted)
	})

	t.Run("невалидная дата", func(t *testing.T) {
		_, err := svc.UnblockDate(ctx, "завтра")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestService_ExportICal_ExcludesExternal(t *testing.T) {
	repo := newFakeRepo(
		manualBlock("2026-03-10"),
		reservationBlock("2026-03-11"),
		externalBlock("2026-03-12"),
	)
	svc := newTestService(repo)

	ics, err := svc.ExportICal(context.Background())
	require.NoError(t, err)

	text := string(ics)
	assert.Contains(t, text, "DTSTART;VALUE=DATE:20260310")
	// 10 и 11 марта склеены в один диапазон с exclusive DTEND
	assert.Contains(t, text, "DTEND;VALUE=DATE:20260312")
	// Внешняя дата не экспортируется обратно на Авито
	assert.NotContains(t, text, "DTSTART;VALUE=DATE:20260312")
	assert.Equal(t, 1, strings.Count(text, "BEGIN:VEVENT"))
}

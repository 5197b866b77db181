package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeRepo хранит настройки в памяти
type fakeRepo struct {
	values  map[string]float64
	failKey string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{values: make(map[string]float64)}
}

func (r *fakeRepo) GetRateConfig(_ context.Context) (*domain.RateConfig, error) {
	cfg := domain.DefaultRateConfig()
	cfg.FromSettings(r.values)
	return cfg, nil
}

func (r *fakeRepo) Set(_ context.Context, key string, value float64) error {
	if key == r.failKey {
		return errors.New("connection reset by peer")
	}
	r.values[key] = value
	return nil
}

// rollbackTx откатывает значения fakeRepo при ошибке fn
type rollbackTx struct {
	repo  *fakeRepo
	calls int
}

func (tx *rollbackTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	snapshot := make(map[string]float64, len(tx.repo.values))
	for k, v := range tx.repo.values {
		snapshot[k] = v
	}
	if err := fn(ctx); err != nil {
		tx.repo.values = snapshot
		return err
	}
	return nil
}

func TestService_Update(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &rollbackTx{repo: repo}, nopLogger{})
	ctx := context.Background()

	cfg, err := svc.Update(ctx, map[string]float64{
		domain.KeyWeekdayPrice: 35000,
		domain.KeyMaxGuests:    25,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(35000), cfg.WeekdayPrice)
	assert.Equal(t, 25, cfg.MaxGuests)
	// Незатронутые ключи остаются дефолтными
	assert.Equal(t, float64(50000), cfg.WeekendPrice)
}

func TestService_Update_UnknownKey(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &rollbackTx{repo: repo}, nopLogger{})

	_, err := svc.Update(context.Background(), map[string]float64{
		"weekday_price": 35000,
		"free_wifi":     1,
	})
	assert.ErrorIs(t, err, ErrUnknownKey)
	// Запрос отклонен целиком, валидный ключ тоже не применился
	assert.Empty(t, repo.values)
}

func TestService_Update_NegativeValue(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo, &rollbackTx{repo: repo}, nopLogger{})

	_, err := svc.Update(context.Background(), map[string]float64{
		domain.KeyDeposit: -100,
	})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Empty(t, repo.values)
}

func TestService_Update_MidWriteFailureRollsBack(t *testing.T) {
	repo := newFakeRepo()
	repo.failKey = domain.KeyWeekendPrice
	tx := &rollbackTx{repo: repo}
	svc := New(repo, tx, nopLogger{})

	_, err := svc.Update(context.Background(), map[string]float64{
		domain.KeyWeekdayPrice: 35000,
		domain.KeyWeekendPrice: 55000,
		domain.KeyCleaningFee:  7000,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	// Сбой посреди записи откатывает транзакцию: ни один ключ не применен
	assert.Equal(t, 1, tx.calls)
	assert.Empty(t, repo.values)
}

func TestService_Get(t *testing.T) {
	repo := newFakeRepo()
	repo.values[domain.KeyCleaningFee] = 7500
	svc := New(repo, &rollbackTx{repo: repo}, nopLogger{})

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(7500), cfg.CleaningFee)
	assert.Equal(t, 24, cfg.PendingCancelHours)
}

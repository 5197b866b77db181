// Package expiry фоновая задача автоотмены неоплаченных бронирований.
// Бронь в статусе PENDING, созданная раньше чем pending_cancel_hours назад,
// отменяется, её даты освобождаются.
package expiry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListExpiredPending(ctx context.Context, olderThan time.Time) ([]*domain.Reservation, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to domain.ReservationStatus) (bool, error)
}

// BlockedDateRepository интерфейс репозитория занятых дат
type BlockedDateRepository interface {
	DeleteByReservation(ctx context.Context, reservationID uuid.UUID) (int64, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetRateConfig(ctx context.Context) (*domain.RateConfig, error)
}

// Notifier интерфейс уведомлений об автоотменах
type Notifier interface {
	NotifyAutoCancelled(ctx context.Context, res *domain.Reservation) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job периодическая задача автоотмены
type Job struct {
	reservations ReservationRepository
	blockedDates BlockedDateRepository
	settings     SettingsRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	interval time.Duration
	running  atomic.Bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func New(
	reservations ReservationRepository,
	blockedDates BlockedDateRepository,
	settings SettingsRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
	interval time.Duration,
) *Job {
	return &Job{
		reservations: reservations,
		blockedDates: blockedDates,
		settings:     settings,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start запускает периодическое выполнение задачи
func (j *Job) Start() {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.RunOnce(context.Background())
			case <-j.stopCh:
				return
			}
		}
	}()
	j.logger.Info("Job expiry: запущена, интервал %s", j.interval)
}

// Stop останавливает задачу
func (j *Job) Stop() {
	close(j.stopCh)
	j.wg.Wait()
}

// RunOnce выполняет один проход автоотмены. Повторный вызов во время
// работающего прохода пропускается.
func (j *Job) RunOnce(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)

	rates, err := j.settings.GetRateConfig(ctx)
	if err != nil {
		j.logger.Error("Job expiry: не удалось получить настройки: %v", err)
		return
	}

	deadline := j.timeProvider.Now().Add(-time.Duration(rates.PendingCancelHours) * time.Hour)
	expired, err := j.reservations.ListExpiredPending(ctx, deadline)
	if err != nil {
		j.logger.Error("Job expiry: не удалось получить просроченные брони: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	cancelled := 0
	for _, res := range expired {
		if j.cancelOne(ctx, res) {
			cancelled++
		}
	}
	j.logger.Info("Job expiry: автоотменено броней: %d из %d", cancelled, len(expired))
}

// cancelOne отменяет одну бронь в собственной транзакции, чтобы сбой
// на одной брони не откатывал остальные
func (j *Job) cancelOne(ctx context.Context, res *domain.Reservation) bool {
	changed := false
	err := j.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		ok, err := j.reservations.UpdateStatusIf(ctx, res.ID, domain.StatusPending, domain.StatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			// Бронь успели оплатить или отменить вручную
			return nil
		}
		if _, err := j.blockedDates.DeleteByReservation(ctx, res.ID); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		j.logger.Error("Job expiry: не удалось отменить бронь %s: %v", res.ID, err)
		return false
	}
	if !changed {
		return false
	}

	j.logger.Info("Job expiry: бронь %s автоотменена (гость %s)", res.ID, res.GuestName)
	if err := j.notifier.NotifyAutoCancelled(ctx, res); err != nil {
		j.logger.Warn("Job expiry: не удалось отправить уведомление по брони %s: %v", res.ID, err)
	}
	return true
}

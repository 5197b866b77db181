// Package reminder фоновая задача напоминаний об оплате.
// Через reminder_after_hours после создания неоплаченной брони гостю и
// администратору отправляется напоминание; каждая бронь получает его
// не более одного раза.
package reminder

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
	ListPendingForReminder(ctx context.Context, olderThan time.Time) ([]*domain.Reservation, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetRateConfig(ctx context.Context) (*domain.RateConfig, error)
}

// Notifier интерфейс отправки напоминаний
type Notifier interface {
	NotifyPendingReminder(ctx context.Context, res *domain.Reservation, remainingHours int) error
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

// Job периодическая задача напоминаний
type Job struct {
	reservations ReservationRepository
	settings     SettingsRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger

	interval   time.Duration
	afterHours int
	running    atomic.Bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func New(
	reservations ReservationRepository,
	settings SettingsRepository,
	notifier Notifier,
	timeProvider TimeProvider,
	logger Logger,
	interval time.Duration,
	afterHours int,
) *Job {
	return &Job{
		reservations: reservations,
		settings:     settings,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
		interval:     interval,
		afterHours:   afterHours,
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
	j.logger.Info("Job reminder: запущена, интервал %s, напоминание через %d ч", j.interval, j.afterHours)
}

// Stop останавливает задачу
func (j *Job) Stop() {
	close(j.stopCh)
	j.wg.Wait()
}

// RunOnce выполняет один проход напоминаний. Повторный вызов во время
// работающего прохода пропускается.
func (j *Job) RunOnce(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)

	deadline := j.timeProvider.Now().Add(-time.Duration(j.afterHours) * time.Hour)
	pending, err := j.reservations.ListPendingForReminder(ctx, deadline)
	if err != nil {
		j.logger.Error("Job reminder: не удалось получить брони для напоминания: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	rates, err := j.settings.GetRateConfig(ctx)
	if err != nil {
		j.logger.Error("Job reminder: не удалось получить настройки: %v", err)
		return
	}

	remaining := rates.PendingCancelHours - j.afterHours
	if remaining < 0 {
		remaining = 0
	}

	sent := 0
	for _, res := range pending {
		if err := j.notifier.NotifyPendingReminder(ctx, res, remaining); err != nil {
			j.logger.Warn("Job reminder: не удалось отправить напоминание по брони %s: %v", res.ID, err)
			continue
		}
		// Отметка ставится только после успешной отправки
		if err := j.reservations.MarkReminderSent(ctx, res.ID); err != nil {
			j.logger.Error("Job reminder: не удалось отметить напоминание по брони %s: %v", res.ID, err)
			continue
		}
		sent++
	}
	j.logger.Info("Job reminder: отправлено напоминаний: %d из %d", sent, len(pending))
}

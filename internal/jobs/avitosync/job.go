// Package avitosync фоновая задача синхронизации занятости с календарем Авито.
// Внешний iCal-календарь скачивается, разворачивается в множество дат и
// сверяется с локальными внешними блокировками; расхождения применяются
// одной транзакцией. Локальные блокировки (ручные и привязанные к
// бронированиям) задача не трогает.
package avitosync

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/internal/ical"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

// CalendarFetcher интерфейс получения внешнего календаря
type CalendarFetcher interface {
	FetchCalendar(ctx context.Context) (string, error)
}

// BlockedDateRepository интерфейс репозитория занятых дат
type BlockedDateRepository interface {
	ListExternalDates(ctx context.Context) ([]types.Date, error)
	ListLocalDates(ctx context.Context) ([]types.Date, error)
	UpsertExternal(ctx context.Context, date types.Date, reason string) error
	DeleteExternal(ctx context.Context, date types.Date) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsObserver интерфейс записи метрик синхронизации
type MetricsObserver interface {
	ObserveSyncRun(result string, added, removed int, seconds float64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Stats результат последнего прохода синхронизации
type Stats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Total   int `json:"total"`
}

// Status текущее состояние синхронизации
type Status struct {
	Running    bool       `json:"running"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	LastError  *string    `json:"last_error,omitempty"`
	LastStats  *Stats     `json:"last_stats,omitempty"`
}

// Job периодическая задача синхронизации с Авито
type Job struct {
	fetcher      CalendarFetcher
	blockedDates BlockedDateRepository
	txManager    TransactionManager
	metrics      MetricsObserver
	logger       Logger

	interval time.Duration
	running  atomic.Bool

	mu         sync.Mutex
	lastSyncAt *time.Time
	lastError  *string
	lastStats  *Stats

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func New(
	fetcher CalendarFetcher,
	blockedDates BlockedDateRepository,
	txManager TransactionManager,
	metrics MetricsObserver,
	logger Logger,
	interval time.Duration,
) *Job {
	return &Job{
		fetcher:      fetcher,
		blockedDates: blockedDates,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		interval:     interval,
		stopCh:       make(chan struct{}),
	}
}

// Start запускает периодическую синхронизацию. Первый проход выполняется
// сразу, не дожидаясь тика.
func (j *Job) Start() {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.RunOnce(context.Background())
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
	j.logger.Info("Job avitosync: запущена, интервал %s", j.interval)
}

// Stop останавливает синхронизацию
func (j *Job) Stop() {
	close(j.stopCh)
	j.wg.Wait()
}

// Status возвращает состояние последнего прохода синхронизации
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Status{
		Running:    j.running.Load(),
		LastSyncAt: j.lastSyncAt,
		LastError:  j.lastError,
		LastStats:  j.lastStats,
	}
}

// RunOnce выполняет один проход синхронизации. Повторный вызов во время
// работающего прохода пропускается.
func (j *Job) RunOnce(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("Job avitosync: проход уже выполняется, пропуск")
		return
	}
	defer j.running.Store(false)

	started := time.Now()
	stats, err := j.sync(ctx)
	elapsed := time.Since(started).Seconds()

	now := time.Now()
	j.mu.Lock()
	j.lastSyncAt = &now
	if err != nil {
		msg := err.Error()
		j.lastError = &msg
	} else {
		j.lastError = nil
		j.lastStats = stats
	}
	j.mu.Unlock()

	if err != nil {
		j.metrics.ObserveSyncRun("error", 0, 0, elapsed)
		j.logger.Error("Job avitosync: проход завершился с ошибкой: %v", err)
		return
	}

	j.metrics.ObserveSyncRun("success", stats.Added, stats.Removed, elapsed)
	if stats.Added > 0 || stats.Removed > 0 {
		j.logger.Info("Job avitosync: добавлено %d, удалено %d, всего внешних дат %d",
			stats.Added, stats.Removed, stats.Total)
	}
}

func (j *Job) sync(ctx context.Context) (*Stats, error) {
	body, err := j.fetcher.FetchCalendar(ctx)
	if err != nil {
		return nil, err
	}
	if !ical.IsCalendar(body) {
		return nil, ErrNotACalendar
	}

	external := ical.ExpandEvents(ical.Parse(body))

	tracked, err := j.blockedDates.ListExternalDates(ctx)
	if err != nil {
		return nil, err
	}

	local, err := j.blockedDates.ListLocalDates(ctx)
	if err != nil {
		return nil, err
	}

	toAdd, toRemove := computeDiff(external, tracked, local)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		return &Stats{Total: len(external)}, nil
	}

	err = j.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		for _, d := range toAdd {
			if err := j.blockedDates.UpsertExternal(ctx, d, domain.AvitoBlockReason); err != nil {
				return err
			}
		}
		for _, d := range toRemove {
			if err := j.blockedDates.DeleteExternal(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Stats{
		Added:   len(toAdd),
		Removed: len(toRemove),
		Total:   len(external),
	}, nil
}

// computeDiff сравнивает внешний календарь с локальными блокировками.
// toAdd — даты, появившиеся во внешнем календаре и еще не занятые локально:
// дата, уже занятая бронированием или вручную (local), считается неизменной
// и не попадает в toAdd, чтобы не раздувать статистику от прохода к проходу.
// toRemove — внешние даты (tracked), которых во внешнем календаре больше нет.
// Результат отсортирован для детерминизма.
func computeDiff(external map[types.Date]struct{}, tracked, local []types.Date) (toAdd, toRemove []types.Date) {
	blocked := make(map[types.Date]struct{}, len(tracked)+len(local))
	for _, d := range tracked {
		blocked[d] = struct{}{}
	}
	for _, d := range local {
		blocked[d] = struct{}{}
	}

	for d := range external {
		if _, ok := blocked[d]; !ok {
			toAdd = append(toAdd, d)
		}
	}
	for _, d := range tracked {
		if _, ok := external[d]; !ok {
			toRemove = append(toRemove, d)
		}
	}

	sort.Slice(toAdd, func(i, j int) bool { return toAdd[i].Before(toAdd[j]) })
	sort.Slice(toRemove, func(i, j int) bool { return toRemove[i].Before(toRemove[j]) })
	return toAdd, toRemove
}

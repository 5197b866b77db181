package create_booking

import (
	"context"
	"time"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// BlockedDateRepository интерфейс репозитория занятых дат
type BlockedDateRepository interface {
	LockRange(ctx context.Context, from, to types.Date) ([]types.Date, error)
	Block(ctx context.Context, b *domain.BlockedDate) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetRateConfig(ctx context.Context) (*domain.RateConfig, error)
}

// Notifier интерфейс канала уведомлений оператора
type Notifier interface {
	NotifyNewReservation(ctx context.Context, res *domain.Reservation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package settings

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetRateConfig(ctx context.Context) (*domain.RateConfig, error)
	Set(ctx context.Context, key string, value float64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

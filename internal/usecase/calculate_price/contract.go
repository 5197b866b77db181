package calculate_price

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetRateConfig(ctx context.Context) (*domain.RateConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_settings

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

type SettingsService interface {
	Update(ctx context.Context, values map[string]float64) (*domain.RateConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

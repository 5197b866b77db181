package get_rate_config

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

type SettingsService interface {
	Get(ctx context.Context) (*domain.RateConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package list_blocked_dates

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	ListBlocked(ctx context.Context) ([]models.BlockedDateInfo, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

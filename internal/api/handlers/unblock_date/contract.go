package unblock_date

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/service/availability/models"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

type AvailabilityService interface {
	UnblockDate(ctx context.Context, date types.Date) (*models.UnblockResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

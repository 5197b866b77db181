package block_date

import (
	"context"

	"github.com/lesnoydomik/booking-service/pkg/types"
)

type AvailabilityService interface {
	BlockDate(ctx context.Context, date types.Date, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_availability

import (
	"context"

	"github.com/lesnoydomik/booking-service/pkg/types"
)

type AvailabilityService interface {
	ListDates(ctx context.Context) ([]types.Date, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

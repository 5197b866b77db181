package calculate_price

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/domain"
	uc "github.com/lesnoydomik/booking-service/internal/usecase/calculate_price"
)

type CalculatePriceUseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*domain.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

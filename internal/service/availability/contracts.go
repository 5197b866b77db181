package availability

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

// BlockedDateRepository интерфейс репозитория занятых дат
type BlockedDateRepository interface {
	List(ctx context.Context) ([]*domain.BlockedDate, error)
	GetByDate(ctx context.Context, date types.Date) (*domain.BlockedDate, error)
	Block(ctx context.Context, b *domain.BlockedDate) error
	DeleteManual(ctx context.Context, date types.Date) (int64, error)
	ListLocalDates(ctx context.Context) ([]types.Date, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

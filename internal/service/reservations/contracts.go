package reservations

import (
	"context"

	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Reservation, error)
	List(ctx context.Context, limit, offset uint64) ([]*domain.Reservation, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlockedDateRepository интерфейс репозитория занятых дат
type BlockedDateRepository interface {
	DeleteByReservation(ctx context.Context, reservationID uuid.UUID) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

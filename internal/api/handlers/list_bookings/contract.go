package list_bookings

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	List(ctx context.Context, page, limit int) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

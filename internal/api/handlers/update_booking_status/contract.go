package update_booking_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

// Request запрос на создание бронирования
type Request struct {
	GuestName  string
	Phone      string
	GuestCount int
	CheckIn    types.Date
	CheckOut   types.Date
	Comment    *string
}

// Response созданное бронирование с расчетом стоимости
type Response struct {
	ID         uuid.UUID
	GuestName  string
	Phone      string
	GuestCount int
	CheckIn    types.Date
	CheckOut   types.Date
	Comment    *string
	Status     string
	CreatedAt  time.Time

	Quote              *domain.Quote
	PendingCancelHours int
}

package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusPaid      ReservationStatus = "PAID"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// ParseReservationStatus валидирует строковый статус
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusPaid, StatusConfirmed, StatusCancelled:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// Reservation бронирование гостевого дома.
// CheckIn/CheckOut — полуоткрытый диапазон [заезд, выезд): день выезда не занят.
type Reservation struct {
	ID         uuid.UUID
	GuestName  string
	Phone      string
	GuestCount int
	CheckIn    types.Date
	CheckOut   types.Date
	TotalPrice float64
	Prepayment float64
	Comment    *string
	Status     ReservationStatus

	// ReminderSent выставляется после отправки напоминания о неоплаченной брони,
	// чтобы напоминание ушло ровно один раз
	ReminderSent bool

	CreatedAt time.Time
}

// Nights возвращает количество ночей бронирования
func (r *Reservation) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

// IsCancelled возвращает true, если бронирование отменено
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Машина состояний: PENDING → PAID → CONFIRMED; отмена из любого
// неотмененного статуса; CANCELLED — терминальный.
func (r *Reservation) CanTransitionTo(target ReservationStatus) bool {
	switch target {
	case StatusPaid:
		return r.Status == StatusPending
	case StatusConfirmed:
		return r.Status == StatusPending || r.Status == StatusPaid
	case StatusCancelled:
		return r.Status != StatusCancelled
	default:
		return false
	}
}

// CanBePurged возвращает true, если бронирование можно физически удалить.
// Удаление разрешено только для отмененных бронирований.
func (r *Reservation) CanBePurged() bool {
	return r.Status == StatusCancelled
}

package models

import (
	"time"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// ReservationResponse представление бронирования для API
type ReservationResponse struct {
	ID         string  `json:"id"`
	GuestName  string  `json:"guestName"`
	Phone      string  `json:"phone"`
	GuestCount int     `json:"guestCount"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	TotalPrice float64 `json:"totalPrice"`
	Prepayment float64 `json:"prepayment"`
	Comment    *string `json:"comment,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

// Pagination метаданные пагинации
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ReservationListResponse страница бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"bookings"`
	Pagination   Pagination             `json:"pagination"`
}

// FromDomainReservation конвертирует доменную модель в API-модель
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:         r.ID.String(),
		GuestName:  r.GuestName,
		Phone:      r.Phone,
		GuestCount: r.GuestCount,
		CheckIn:    r.CheckIn.String(),
		CheckOut:   r.CheckOut.String(),
		TotalPrice: r.TotalPrice,
		Prepayment: r.Prepayment,
		Comment:    r.Comment,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует слайс доменных моделей
func FromDomainReservationList(list []*domain.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return out
}

package create_booking

import (
	"time"

	uc "github.com/lesnoydomik/booking-service/internal/usecase/create_booking"
)

// Request тело запроса на создание бронирования
type Request struct {
	GuestName  string  `json:"guestName"`
	Phone      string  `json:"phone"`
	GuestCount int     `json:"guestCount"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	Comment    *string `json:"comment,omitempty"`
}

// PriceBreakdown детализация стоимости
type PriceBreakdown struct {
	Nights              int     `json:"nights"`
	WeekdayNights       int     `json:"weekdayNights"`
	WeekendNights       int     `json:"weekendNights"`
	WeekdayPrice        float64 `json:"weekdayPrice"`
	WeekendPrice        float64 `json:"weekendPrice"`
	ExtraGuests         int     `json:"extraGuests"`
	GuestSurcharge      float64 `json:"guestSurcharge"`
	GuestSurchargeTotal float64 `json:"guestSurchargeTotal"`
	TotalPrice          float64 `json:"totalPrice"`
	Deposit             float64 `json:"deposit"`
	CleaningFee         float64 `json:"cleaningFee"`
}

// Response созданное бронирование
type Response struct {
	ID                 string          `json:"id"`
	GuestName          string          `json:"guestName"`
	Phone              string          `json:"phone"`
	GuestCount         int             `json:"guestCount"`
	CheckIn            string          `json:"checkIn"`
	CheckOut           string          `json:"checkOut"`
	Comment            *string         `json:"comment,omitempty"`
	Status             string          `json:"status"`
	CreatedAt          string          `json:"createdAt"`
	Price              *PriceBreakdown `json:"price"`
	PendingCancelHours int             `json:"pendingCancelHours"`
}

// fromUseCaseResponse конвертирует результат usecase в API-модель
func fromUseCaseResponse(res *uc.Response) *Response {
	out := &Response{
		ID:                 res.ID.String(),
		GuestName:          res.GuestName,
		Phone:              res.Phone,
		GuestCount:         res.GuestCount,
		CheckIn:            res.CheckIn.String(),
		CheckOut:           res.CheckOut.String(),
		Comment:            res.Comment,
		Status:             res.Status,
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
		PendingCancelHours: res.PendingCancelHours,
	}
	if res.Quote != nil {
		out.Price = &PriceBreakdown{
			Nights:              res.Quote.Nights,
			WeekdayNights:       res.Quote.WeekdayNights,
			WeekendNights:       res.Quote.WeekendNights,
			WeekdayPrice:        res.Quote.WeekdayPrice,
			WeekendPrice:        res.Quote.WeekendPrice,
			ExtraGuests:         res.Quote.ExtraGuests,
			GuestSurcharge:      res.Quote.GuestSurcharge,
			GuestSurchargeTotal: res.Quote.GuestSurchargeTotal,
			TotalPrice:          res.Quote.TotalPrice,
			Deposit:             res.Quote.Deposit,
			CleaningFee:         res.Quote.CleaningFee,
		}
	}
	return out
}

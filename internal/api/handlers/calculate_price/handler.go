package calculate_price

import (
	"errors"
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
	uc "github.com/lesnoydomik/booking-service/internal/usecase/calculate_price"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgInvalidInput  = "некорректные параметры расчета"
	msgTooManyGuests = "превышено максимальное число гостей"
)

// Request параметры расчета стоимости
type Request struct {
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	GuestCount int    `json:"guestCount"`
}

// Response детализация стоимости
type Response struct {
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
	IncludedGuests      int     `json:"includedGuests"`
	MaxGuests           int     `json:"maxGuests"`
}

type Handler struct {
	usecase CalculatePriceUseCase
	logger  Logger
}

func NewHandler(usecase CalculatePriceUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/bookings/calculate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/calculate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	quote, err := h.usecase.Execute(r.Context(), &uc.Request{
		CheckIn:    types.Date(req.CheckIn),
		CheckOut:   types.Date(req.CheckOut),
		GuestCount: req.GuestCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrTooManyGuests):
			h.logger.Warn("POST /bookings/calculate - Too many guests: %d", req.GuestCount)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, uc.ErrInvalidInput):
			h.logger.Warn("POST /bookings/calculate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/calculate - Failed to calculate price: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &Response{
		Nights:              quote.Nights,
		WeekdayNights:       quote.WeekdayNights,
		WeekendNights:       quote.WeekendNights,
		WeekdayPrice:        quote.WeekdayPrice,
		WeekendPrice:        quote.WeekendPrice,
		ExtraGuests:         quote.ExtraGuests,
		GuestSurcharge:      quote.GuestSurcharge,
		GuestSurchargeTotal: quote.GuestSurchargeTotal,
		TotalPrice:          quote.TotalPrice,
		Deposit:             quote.Deposit,
		CleaningFee:         quote.CleaningFee,
		IncludedGuests:      quote.IncludedGuests,
		MaxGuests:           quote.MaxGuests,
	})
}

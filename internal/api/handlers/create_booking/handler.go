package create_booking

import (
	"errors"
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
	uc "github.com/lesnoydomik/booking-service/internal/usecase/create_booking"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgInvalidInput  = "некорректные данные бронирования"
	msgTooManyGuests = "превышено максимальное число гостей"
	msgDatesConflict = "выбранные даты уже заняты"
)

type Handler struct {
	usecase CreateBookingUseCase
	logger  Logger
}

func NewHandler(usecase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.usecase.Execute(r.Context(), &uc.Request{
		GuestName:  req.GuestName,
		Phone:      req.Phone,
		GuestCount: req.GuestCount,
		CheckIn:    types.Date(req.CheckIn),
		CheckOut:   types.Date(req.CheckOut),
		Comment:    req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrDatesConflict):
			h.logger.Warn("POST /bookings - Dates conflict: %s..%s", req.CheckIn, req.CheckOut)
			handlers.RespondConflict(w, msgDatesConflict)

		case errors.Is(err, uc.ErrTooManyGuests):
			h.logger.Warn("POST /bookings - Too many guests: %d", req.GuestCount)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, uc.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%s, dates=%s..%s",
		result.ID, result.CheckIn, result.CheckOut)
	handlers.RespondJSON(w, http.StatusCreated, fromUseCaseResponse(result))
}

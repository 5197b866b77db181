package block_date

import (
	"errors"
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
	"github.com/lesnoydomik/booking-service/internal/service/availability"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

const (
	msgInvalidBody = "некорректное тело запроса"
	msgInvalidDate = "некорректная дата, ожидается формат YYYY-MM-DD"
)

// Request дата для ручной блокировки
type Request struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// Response подтверждение блокировки
type Response struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.BlockDate(r.Context(), types.Date(req.Date), req.Reason); err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			h.logger.Warn("POST /admin/blocked-dates - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /admin/blocked-dates - Failed to block date %q: %v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-dates - Date blocked: %s", req.Date)
	handlers.RespondJSON(w, http.StatusCreated, &Response{Date: req.Date, Blocked: true})
}

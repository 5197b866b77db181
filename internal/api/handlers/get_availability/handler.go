package get_availability

import (
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
)

// Response список занятых дат для публичного календаря
type Response struct {
	BlockedDates []string `json:"blockedDates"`
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

// Handle GET /api/bookings/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.ListDates(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/blocked-dates - Failed to list dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	handlers.RespondJSON(w, http.StatusOK, &Response{BlockedDates: out})
}

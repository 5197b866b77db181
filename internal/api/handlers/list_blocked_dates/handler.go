package list_blocked_dates

import (
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
	"github.com/lesnoydomik/booking-service/internal/service/availability/models"
)

// Response занятые даты с происхождением блокировок
type Response struct {
	BlockedDates []models.BlockedDateInfo `json:"blockedDates"`
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

// Handle GET /api/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.service.ListBlocked(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blocked-dates - Failed to list dates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &Response{BlockedDates: blocked})
}

package export_calendar

import (
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
)

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

// Handle GET /api/calendar/export.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ics, err := h.service.ExportICal(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar/export.ics - Failed to build calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(ics)
}

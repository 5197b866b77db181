package unblock_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
	"github.com/lesnoydomik/booking-service/internal/service/availability"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

const (
	msgInvalidDate   = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgDateProtected = "дата занята бронированием или внешним календарем"
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

// Handle DELETE /api/admin/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date := types.Date(vars["date"])

	result, err := h.service.UnblockDate(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDate):
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Invalid date: %q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availability.ErrDateProtected):
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Date protected: %s", date)
			handlers.RespondConflict(w, msgDateProtected)

		default:
			h.logger.Error("DELETE /admin/blocked-dates/{date} - Failed to unblock %s: %v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates/{date} - Date unblocked: %s, deleted=%v", date, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}

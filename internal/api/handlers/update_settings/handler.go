package update_settings

import (
	"errors"
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
	"github.com/lesnoydomik/booking-service/internal/service/settings"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgUnknownKey   = "неизвестный ключ настройки"
	msgInvalidValue = "значение настройки должно быть неотрицательным числом"
	msgEmptyRequest = "запрос не содержит настроек"
)

// Response действующие тарифы после обновления
type Response struct {
	WeekdayPrice       float64 `json:"weekday_price"`
	WeekendPrice       float64 `json:"weekend_price"`
	GuestSurcharge     float64 `json:"guest_surcharge"`
	IncludedGuests     int     `json:"included_guests"`
	MaxGuests          int     `json:"max_guests"`
	Deposit            float64 `json:"deposit"`
	CleaningFee        float64 `json:"cleaning_fee"`
	PendingCancelHours int     `json:"pending_cancel_hours"`
}

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req map[string]float64
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if len(req) == 0 {
		h.logger.Warn("PUT /admin/settings - Empty request")
		handlers.RespondBadRequest(w, msgEmptyRequest)
		return
	}

	cfg, err := h.service.Update(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrUnknownKey):
			h.logger.Warn("PUT /admin/settings - Unknown key: %v", err)
			handlers.RespondBadRequest(w, msgUnknownKey)

		case errors.Is(err, settings.ErrInvalidValue):
			h.logger.Warn("PUT /admin/settings - Invalid value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidValue)

		default:
			h.logger.Error("PUT /admin/settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/settings - Settings updated: keys=%d", len(req))
	handlers.RespondJSON(w, http.StatusOK, &Response{
		WeekdayPrice:       cfg.WeekdayPrice,
		WeekendPrice:       cfg.WeekendPrice,
		GuestSurcharge:     cfg.GuestSurcharge,
		IncludedGuests:     cfg.IncludedGuests,
		MaxGuests:          cfg.MaxGuests,
		Deposit:            cfg.Deposit,
		CleaningFee:        cfg.CleaningFee,
		PendingCancelHours: cfg.PendingCancelHours,
	})
}

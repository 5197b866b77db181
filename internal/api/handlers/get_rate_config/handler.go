package get_rate_config

import (
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
)

// Response действующие тарифы и параметры бронирования
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

// Handle GET /api/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /settings - Failed to load settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

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

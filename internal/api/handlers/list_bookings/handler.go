package list_bookings

import (
	"net/http"
	"strconv"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
	"github.com/lesnoydomik/booking-service/internal/domain"
)

const msgInvalidPagination = "некорректные параметры пагинации"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/admin/bookings?page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := parsePagination(r)
	if !ok {
		h.logger.Warn("GET /admin/bookings - Invalid pagination: page=%q, limit=%q",
			r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// parsePagination читает page и limit из query, применяя значения по
// умолчанию и потолок размера страницы
func parsePagination(r *http.Request) (page, limit int, ok bool) {
	page = domain.DefaultPage
	limit = domain.DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, false
		}
		page = v
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, false
		}
		limit = v
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}
	return page, limit, true
}

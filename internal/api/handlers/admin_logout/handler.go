package admin_logout

import (
	"net/http"
	"strings"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/logout
//
// Отзыв токена идемпотентен: повторный выход с тем же токеном
// тоже возвращает 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
		h.service.Logout(r.Context(), strings.TrimSpace(parts[1]))
	}

	h.logger.Info("POST /admin/logout - Admin logged out")
	w.WriteHeader(http.StatusNoContent)
}

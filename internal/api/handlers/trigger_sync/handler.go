package trigger_sync

import (
	"net/http"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
)

type Handler struct {
	job    SyncJob
	logger Logger
}

func NewHandler(job SyncJob, logger Logger) *Handler {
	return &Handler{
		job:    job,
		logger: logger,
	}
}

// Handle POST /api/admin/sync/trigger
//
// Синхронизация выполняется синхронно: ответ возвращается после
// завершения прохода вместе с его результатом.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("POST /admin/sync/trigger - Manual sync requested")
	h.job.RunOnce(r.Context())
	handlers.RespondJSON(w, http.StatusOK, h.job.Status())
}

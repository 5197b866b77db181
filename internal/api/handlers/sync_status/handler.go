package sync_status

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

// Handle GET /api/admin/sync/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.job.Status())
}

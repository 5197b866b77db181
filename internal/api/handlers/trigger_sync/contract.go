package trigger_sync

import (
	"context"

	"github.com/lesnoydomik/booking-service/internal/jobs/avitosync"
)

type SyncJob interface {
	RunOnce(ctx context.Context)
	Status() avitosync.Status
}

type Logger interface {
	Info(format string, v ...interface{})
}

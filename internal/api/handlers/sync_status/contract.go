package sync_status

import "github.com/lesnoydomik/booking-service/internal/jobs/avitosync"

type SyncJob interface {
	Status() avitosync.Status
}

type Logger interface {
	Info(format string, v ...interface{})
}

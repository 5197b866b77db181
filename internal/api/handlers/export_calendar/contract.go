package export_calendar

import "context"

type AvailabilityService interface {
	ExportICal(ctx context.Context) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

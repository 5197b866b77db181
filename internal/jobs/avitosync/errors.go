package avitosync

import "errors"

var (
	// ErrNotACalendar скачанный документ не является iCal-календарем
	ErrNotACalendar = errors.New("job avitosync: ответ не является iCal-календарем")
)

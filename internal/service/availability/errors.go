package availability

import "errors"

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("availability.service: invalid date format")

	// ErrDateProtected возвращается при попытке вручную разблокировать дату,
	// привязанную к бронированию или внешнему календарю
	ErrDateProtected = errors.New("availability.service: date is not manually blocked")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)

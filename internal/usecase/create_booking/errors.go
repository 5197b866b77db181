package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrTooManyGuests возвращается при превышении максимума гостей
	ErrTooManyGuests = errors.New("create_booking: guest count exceeds maximum")

	// ErrDatesConflict возвращается, когда запрошенный диапазон пересекается
	// с уже занятыми датами
	ErrDatesConflict = errors.New("create_booking: dates are already blocked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

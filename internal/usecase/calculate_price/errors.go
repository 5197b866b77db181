package calculate_price

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calculate_price: invalid input data")

	// ErrTooManyGuests возвращается при превышении максимума гостей
	ErrTooManyGuests = errors.New("calculate_price: guest count exceeds maximum")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_price: internal error")
)

package avito

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("avito client: internal error")

	// ErrFetchFailed возвращается при сетевой ошибке или таймауте
	ErrFetchFailed = errors.New("avito client: failed to fetch calendar")

	// ErrBadStatus возвращается при неожиданном HTTP-статусе
	ErrBadStatus = errors.New("avito client: unexpected status code")
)

package telegram

import "errors"

var (
	// ErrNotConfigured возвращается, когда бот не настроен (нет токена или chat_id)
	ErrNotConfigured = errors.New("telegram client: not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrAPIError возвращается, когда Bot API ответил ошибкой
	ErrAPIError = errors.New("telegram client: api error")
)

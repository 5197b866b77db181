package settings

import "errors"

var (
	// ErrUnknownKey запрос содержит ключ настройки, которого не существует
	ErrUnknownKey = errors.New("service settings: неизвестный ключ настройки")
	// ErrInvalidValue значение настройки вне допустимого диапазона
	ErrInvalidValue = errors.New("service settings: недопустимое значение настройки")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("service settings: внутренняя ошибка")
)

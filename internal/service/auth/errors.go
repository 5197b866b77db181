package auth

import "errors"

var (
	// ErrInvalidCredentials неверный логин или пароль
	ErrInvalidCredentials = errors.New("service auth: неверные учетные данные")
	// ErrInvalidToken токен не существует или истек
	ErrInvalidToken = errors.New("service auth: недействительный токен")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("service auth: внутренняя ошибка")
)

package domain

// Валидация бронирования
const (
	MinGuestNameLength = 2
	MinPhoneDigits     = 10
	MaxCommentLength   = 1000
)

// Пагинация списка бронирований
const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Причины блокировки дат по умолчанию
const (
	ManualBlockReason = "Ручная блокировка"
	AvitoBlockReason  = "Бронирование с Авито"
)

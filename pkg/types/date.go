package types

import (
	"errors"
	"time"
)

// DateLayout формат календарной даты YYYY-MM-DD
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat возвращается при некорректном формате даты
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// Date календарная дата без времени и часового пояса в формате "YYYY-MM-DD".
// Хранится строкой, чтобы исключить сдвиги дат при конвертации таймзон.
// Лексикографическое сравнение ISO-дат совпадает с хронологическим.
type Date string

// NewDate создает Date из time.Time (берёт только календарную часть)
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate парсит и валидирует строку "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDateFormat
	}
	return Date(s), nil
}

// String возвращает строковое представление даты
func (d Date) String() string {
	return string(d)
}

// Validate проверяет, что дата имеет корректный формат
func (d Date) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d == ""
}

// Time конвертирует дату в time.Time (полночь UTC).
// Для невалидной даты возвращает нулевое время.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays возвращает дату, сдвинутую на n дней (n может быть отрицательным)
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time().AddDate(0, 0, n))
}

// Next возвращает следующий календарный день
func (d Date) Next() Date {
	return d.AddDays(1)
}

// Before возвращает true, если дата раньше other
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// After возвращает true, если дата позже other
func (d Date) After(other Date) bool {
	return string(d) > string(other)
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше)
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

package create_booking

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Проверка дат диапазона и максимума гостей выполняется позже,
// внутри транзакции, вместе с расчетом стоимости.
func validateRequest(req *Request) error {
	if len(strings.TrimSpace(req.GuestName)) < domain.MinGuestNameLength {
		return fmt.Errorf("%w: guest name is too short", ErrInvalidInput)
	}

	if countDigits(req.Phone) < domain.MinPhoneDigits {
		return fmt.Errorf("%w: phone must contain at least %d digits", ErrInvalidInput, domain.MinPhoneDigits)
	}

	if req.GuestCount < 1 {
		return fmt.Errorf("%w: guest count must be a positive integer", ErrInvalidInput)
	}

	if err := req.CheckIn.Validate(); err != nil {
		return fmt.Errorf("%w: invalid check-in date: %v", ErrInvalidInput, err)
	}
	if err := req.CheckOut.Validate(); err != nil {
		return fmt.Errorf("%w: invalid check-out date: %v", ErrInvalidInput, err)
	}

	if !req.CheckIn.Before(req.CheckOut) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	return nil
}

// countDigits считает количество цифр в строке (телефон может содержать
// разделители и код страны в произвольном формате)
func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

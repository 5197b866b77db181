package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/lesnoydomik/booking-service/pkg/types"
)

var (
	// ErrInvalidGuestCount возвращается при некорректном количестве гостей
	ErrInvalidGuestCount = errors.New("pricing: guest count must be a positive integer")

	// ErrTooManyGuests возвращается при превышении максимума гостей
	ErrTooManyGuests = errors.New("pricing: guest count exceeds maximum")

	// ErrInvalidDateRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDateRange = errors.New("pricing: check-out must be after check-in")
)

// Quote детализированный расчет стоимости проживания
type Quote struct {
	Nights        int
	WeekdayNights int
	WeekendNights int

	WeekdayPrice float64
	WeekendPrice float64

	ExtraGuests         int
	GuestSurcharge      float64
	GuestSurchargeTotal float64

	TotalPrice  float64
	Deposit     float64
	CleaningFee float64

	IncludedGuests int
	MaxGuests      int
}

// IsWeekendNight классифицирует ночь как выходную.
// Выходные: пятница, суббота, воскресенье.
func IsWeekendNight(date types.Date) bool {
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// CalculateQuote рассчитывает стоимость проживания для диапазона [checkIn, checkOut).
// Чистая функция без I/O: обходит каждую ночь диапазона, считает будни и выходные
// отдельно и добавляет доплату за гостей сверх включенных в базовую цену.
func CalculateQuote(checkIn, checkOut types.Date, guestCount int, rates *RateConfig) (*Quote, error) {
	if guestCount < 1 {
		return nil, ErrInvalidGuestCount
	}
	if guestCount > rates.MaxGuests {
		return nil, fmt.Errorf("%w: maximum is %d", ErrTooManyGuests, rates.MaxGuests)
	}
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	var weekdayNights, weekendNights int
	var totalBase float64

	for d := checkIn; d.Before(checkOut); d = d.Next() {
		if IsWeekendNight(d) {
			weekendNights++
			totalBase += rates.WeekendPrice
		} else {
			weekdayNights++
			totalBase += rates.WeekdayPrice
		}
	}

	nights := weekdayNights + weekendNights

	extraGuests := guestCount - rates.IncludedGuests
	if extraGuests < 0 {
		extraGuests = 0
	}
	surchargeTotal := float64(extraGuests) * rates.GuestSurcharge * float64(nights)

	return &Quote{
		Nights:              nights,
		WeekdayNights:       weekdayNights,
		WeekendNights:       weekendNights,
		WeekdayPrice:        rates.WeekdayPrice,
		WeekendPrice:        rates.WeekendPrice,
		ExtraGuests:         extraGuests,
		GuestSurcharge:      rates.GuestSurcharge,
		GuestSurchargeTotal: surchargeTotal,
		TotalPrice:          totalBase + surchargeTotal,
		Deposit:             rates.Deposit,
		CleaningFee:         rates.CleaningFee,
		IncludedGuests:      rates.IncludedGuests,
		MaxGuests:           rates.MaxGuests,
	}, nil
}

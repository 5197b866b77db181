package domain

// RateConfig тарифы и параметры бронирования.
// Хранится в таблице settings как key/value, мутируется только администратором.
type RateConfig struct {
	WeekdayPrice       float64 // цена за ночь в будни (пн–чт)
	WeekendPrice       float64 // цена за ночь в выходные (пт–вс)
	GuestSurcharge     float64 // доплата за каждого дополнительного гостя за ночь
	IncludedGuests     int     // гостей включено в базовую цену
	MaxGuests          int     // абсолютный максимум гостей
	Deposit            float64 // возвращаемый залог
	CleaningFee        float64 // доплата за уборку
	PendingCancelHours int     // часов до автоотмены неоплаченной брони
}

// Ключи настроек в таблице settings
const (
	KeyWeekdayPrice       = "weekday_price"
	KeyWeekendPrice       = "weekend_price"
	KeyGuestSurcharge     = "guest_surcharge"
	KeyIncludedGuests     = "included_guests"
	KeyMaxGuests          = "max_guests"
	KeyDeposit            = "deposit"
	KeyCleaningFee        = "cleaning_fee"
	KeyPendingCancelHours = "pending_cancel_hours"
)

// AllowedSettingKeys полный набор допустимых ключей настроек.
// Запросы с неизвестными ключами отклоняются на границе.
var AllowedSettingKeys = map[string]bool{
	KeyWeekdayPrice:       true,
	KeyWeekendPrice:       true,
	KeyGuestSurcharge:     true,
	KeyIncludedGuests:     true,
	KeyMaxGuests:          true,
	KeyDeposit:            true,
	KeyCleaningFee:        true,
	KeyPendingCancelHours: true,
}

// DefaultRateConfig значения по умолчанию, используются при отсутствии ключа в БД
func DefaultRateConfig() *RateConfig {
	return &RateConfig{
		WeekdayPrice:       30000,
		WeekendPrice:       50000,
		GuestSurcharge:     1000,
		IncludedGuests:     15,
		MaxGuests:          30,
		Deposit:            30000,
		CleaningFee:        6000,
		PendingCancelHours: 24,
	}
}

// FromSettings заполняет конфигурацию из key/value набора,
// отсутствующие ключи остаются дефолтными
func (c *RateConfig) FromSettings(settings map[string]float64) {
	if v, ok := settings[KeyWeekdayPrice]; ok {
		c.WeekdayPrice = v
	}
	if v, ok := settings[KeyWeekendPrice]; ok {
		c.WeekendPrice = v
	}
	if v, ok := settings[KeyGuestSurcharge]; ok {
		c.GuestSurcharge = v
	}
	if v, ok := settings[KeyIncludedGuests]; ok {
		c.IncludedGuests = int(v)
	}
	if v, ok := settings[KeyMaxGuests]; ok {
		c.MaxGuests = int(v)
	}
	if v, ok := settings[KeyDeposit]; ok {
		c.Deposit = v
	}
	if v, ok := settings[KeyCleaningFee]; ok {
		c.CleaningFee = v
	}
	if v, ok := settings[KeyPendingCancelHours]; ok {
		c.PendingCancelHours = int(v)
	}
}

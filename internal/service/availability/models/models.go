package models

import "github.com/lesnoydomik/booking-service/pkg/types"

// BlockedDateInfo информация о занятой дате для админ-панели
type BlockedDateInfo struct {
	Date      types.Date `json:"date"`
	Reason    string     `json:"reason"`
	Origin    string     `json:"origin"`
	BookingID *string    `json:"booking_id,omitempty"`
}

// UnblockResult результат снятия ручной блокировки
type UnblockResult struct {
	Date    types.Date `json:"date"`
	Deleted bool       `json:"deleted"`
}

package domain

import (
	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/pkg/types"
)

// SourceAvito маркер дат, пришедших из внешнего календаря Авито.
// У локальных блокировок (ручных и привязанных к бронированию) source пустой.
const SourceAvito = "avito"

// BlockOrigin происхождение блокировки даты
type BlockOrigin string

const (
	// OriginManual дата заблокирована администратором вручную
	OriginManual BlockOrigin = "manual"
	// OriginReservation дата занята бронированием
	OriginReservation BlockOrigin = "reservation"
	// OriginExternal дата пришла из внешнего календаря (Авито)
	OriginExternal BlockOrigin = "external"
)

// BlockedDate занятый календарный день.
// На одну дату существует не более одной записи (UNIQUE по date).
type BlockedDate struct {
	ID     uuid.UUID
	Date   types.Date
	Reason string

	// Source nil для локальных блокировок, "avito" для внешних
	Source *string

	// ReservationID заполнен, если дата занята бронированием
	ReservationID *uuid.UUID
}

// Origin классифицирует блокировку по происхождению
func (b *BlockedDate) Origin() BlockOrigin {
	if b.ReservationID != nil {
		return OriginReservation
	}
	if b.Source != nil && *b.Source == SourceAvito {
		return OriginExternal
	}
	return OriginManual
}

package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, с которыми сервер обрывает транзакцию,
// проигравшую гонку с параллельной транзакцией.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
)

// IsConcurrencyConflict сообщает, что транзакция была оборвана сервером
// из-за одновременной конкурирующей транзакции: serialization failure,
// deadlock или нарушение уникальности при параллельной вставке.
// Такие ошибки не означают поломку — повтор транзакции увидит
// уже закоммиченное состояние и разрешится штатно.
func IsConcurrencyConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case codeSerializationFailure, codeDeadlockDetected, codeUniqueViolation:
		return true
	}

	return false
}

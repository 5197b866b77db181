package blockeddate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/dbmetrics"
	"github.com/lesnoydomik/booking-service/pkg/psqlbuilder"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

// Repository репозиторий занятых дат.
// Таблица blocked_dates — единственный источник истины про занятость:
// UNIQUE-ограничение по date гарантирует не более одной записи на день.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятых дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все занятые даты с метаданными происхождения
func (r *Repository) List(ctx context.Context) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "reason", "source", "booking_id").
		From("blocked_dates").
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var b domain.BlockedDate
		var date time.Time
		var reason sql.NullString

		if err := rows.Scan(&b.ID, &date, &reason, &b.Source, &b.ReservationID); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		b.Date = types.NewDate(date)
		b.Reason = reason.String
		blocked = append(blocked, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// GetByDate возвращает блокировку конкретной даты
func (r *Repository) GetByDate(ctx context.Context, date types.Date) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "reason", "source", "booking_id").
		From("blocked_dates").
		Where(squirrel.Eq{"date": date.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.BlockedDate
	var d time.Time
	var reason sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &d, &reason, &b.Source, &b.ReservationID)
	if err == sql.ErrNoRows {
		return nil, ErrDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
	}

	b.Date = types.NewDate(d)
	b.Reason = reason.String

	return &b, nil
}

// ListLocalDates возвращает даты локального происхождения (бронирования и
// ручные блокировки). Используется iCal-экспортом: даты, пришедшие с Авито,
// исключаются, чтобы не зациклить синхронизацию.
func (r *Repository) ListLocalDates(ctx context.Context) ([]types.Date, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date").
		From("blocked_dates").
		Where(squirrel.Or{
			squirrel.Eq{"source": nil},
			squirrel.NotEq{"source": domain.SourceAvito},
		}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLocalDates - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDates(ctx, executor, query, args, "ListLocalDates")
}

// ListExternalDates возвращает даты, пришедшие из внешнего календаря
func (r *Repository) ListExternalDates(ctx context.Context) ([]types.Date, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date").
		From("blocked_dates").
		Where(squirrel.Eq{"source": domain.SourceAvito}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListExternalDates - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDates(ctx, executor, query, args, "ListExternalDates")
}

// LockRange возвращает занятые даты из диапазона [from, to).
// Внутри транзакции строки блокируются (FOR UPDATE): проверка конфликта
// и последующая вставка выполняются как одно целое, гонка двух
// одновременных бронирований на пересекающиеся диапазоны исключена.
func (r *Repository) LockRange(ctx context.Context, from, to types.Date) ([]types.Date, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("date").
		From("blocked_dates").
		Where(squirrel.GtOrEq{"date": from.String()}).
		Where(squirrel.Lt{"date": to.String()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryDates(ctx, executor, query, args, "LockRange")
}

// Block блокирует дату. Идемпотентно: уже занятая дата не перезаписывается
// (ON CONFLICT DO NOTHING), происхождение существующей блокировки сохраняется.
func (r *Repository) Block(ctx context.Context, b *domain.BlockedDate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("date", "reason", "source", "booking_id").
		Values(b.Date.String(), b.Reason, b.Source, b.ReservationID).
		Suffix("ON CONFLICT (date) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Block - build insert query: %v", ErrBuildQuery, err)
	}

	// Драйверная ошибка остается в цепочке: по ней вызывающий код
	// отличает проигрыш serializable-гонки от настоящей поломки.
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Block - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// UpsertExternal вставляет дату из внешнего календаря.
// Если дата уже занята локально (бронированием или вручную), происхождение
// не перезаписывается: source выставляется в 'avito' только для строк
// без source и без привязки к бронированию.
func (r *Repository) UpsertExternal(ctx context.Context, date types.Date, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `INSERT INTO blocked_dates (date, reason, source)
		VALUES ($1::date, $2, $3)
		ON CONFLICT (date) DO UPDATE SET
			reason = EXCLUDED.reason,
			source = CASE
				WHEN blocked_dates.source IS NULL AND blocked_dates.booking_id IS NULL
				THEN EXCLUDED.source
				ELSE blocked_dates.source
			END`

	if _, err := executor.ExecContext(ctx, query, date.String(), reason, domain.SourceAvito); err != nil {
		return fmt.Errorf("%w: UpsertExternal - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExternal снимает блокировку, поставленную внешним календарем.
// Локальные блокировки (бронирования, ручные) не затрагиваются.
func (r *Repository) DeleteExternal(ctx context.Context, date types.Date) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"date": date.String(), "source": domain.SourceAvito}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteExternal - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteExternal - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteManual снимает ручную блокировку даты.
// Даты, привязанные к бронированию или пришедшие из внешнего календаря,
// этим путем не удаляются. Возвращает количество удаленных строк.
func (r *Repository) DeleteManual(ctx context.Context, date types.Date) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"date": date.String(), "booking_id": nil}).
		Where(squirrel.Or{
			squirrel.Eq{"source": nil},
			squirrel.NotEq{"source": domain.SourceAvito},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteManual - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteManual - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteManual - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// DeleteByReservation удаляет все даты, привязанные к бронированию.
// Вызывается при отмене и при физическом удалении бронирования.
func (r *Repository) DeleteByReservation(ctx context.Context, reservationID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"booking_id": reservationID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByReservation - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByReservation - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByReservation - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// queryDates выполняет запрос, возвращающий единственную колонку date
func (r *Repository) queryDates(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) ([]types.Date, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	dates := make([]types.Date, 0)
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: %s - scan date: %v", ErrScanRow, method, err)
		}
		dates = append(dates, types.NewDate(date))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return dates, nil
}

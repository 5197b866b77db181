package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/dbmetrics"
	"github.com/lesnoydomik/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий настроек (key/value, значения — числа в JSONB)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все настройки в виде key → числовое значение.
// Нечисловые значения пропускаются: типизация формализуется
// на уровне domain.RateConfig.
func (r *Repository) GetAll(ctx context.Context) (map[string]float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From("settings").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		value, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			continue
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return values, nil
}

// GetRateConfig собирает типизированную конфигурацию тарифов.
// Отсутствующие в БД ключи заполняются значениями по умолчанию.
func (r *Repository) GetRateConfig(ctx context.Context) (*domain.RateConfig, error) {
	values, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultRateConfig()
	cfg.FromSettings(values)
	return cfg, nil
}

// Set сохраняет значение настройки (upsert)
func (r *Repository) Set(ctx context.Context, key string, value float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw := strconv.FormatFloat(value, 'f', -1, 64)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(key, raw).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

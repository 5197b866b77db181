package settings

import (
	"context"
	"fmt"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

// Service сервис управления тарифами и параметрами бронирования
type Service struct {
	repo      SettingsRepository
	txManager TransactionManager
	logger    Logger
}

func New(repo SettingsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает действующую конфигурацию тарифов
func (s *Service) Get(ctx context.Context) (*domain.RateConfig, error) {
	cfg, err := s.repo.GetRateConfig(ctx)
	if err != nil {
		s.logger.Error("Service settings: Get - не удалось получить настройки: %v", err)
		return nil, fmt.Errorf("%w: Get: %v", ErrInternal, err)
	}
	return cfg, nil
}

// Update применяет набор настроек. Запрос отклоняется целиком, если
// содержит неизвестный ключ или отрицательное значение — частичных
// применений не бывает.
func (s *Service) Update(ctx context.Context, values map[string]float64) (*domain.RateConfig, error) {
	for key, value := range values {
		if !domain.AllowedSettingKeys[key] {
			return nil, fmt.Errorf("%w: Update - ключ %q", ErrUnknownKey, key)
		}
		if value < 0 {
			return nil, fmt.Errorf("%w: Update - ключ %q, значение %v", ErrInvalidValue, key, value)
		}
	}

	// Записи идут одной транзакцией: сбой на любом ключе откатывает все
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for key, value := range values {
			if err := s.repo.Set(txCtx, key, value); err != nil {
				s.logger.Error("Service settings: Update - не удалось сохранить %s: %v", key, err)
				return fmt.Errorf("%w: Update - ключ %q: %v", ErrInternal, key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Service settings: обновлено настроек: %d", len(values))

	cfg, err := s.repo.GetRateConfig(ctx)
	if err != nil {
		s.logger.Error("Service settings: Update - не удалось перечитать настройки: %v", err)
		return nil, fmt.Errorf("%w: Update: %v", ErrInternal, err)
	}
	return cfg, nil
}

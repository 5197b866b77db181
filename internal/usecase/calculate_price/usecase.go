package calculate_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

// Request параметры расчета стоимости
type Request struct {
	CheckIn    types.Date
	CheckOut   types.Date
	GuestCount int
}

// UseCase use case расчета стоимости проживания.
// Расчет детерминированный и без побочных эффектов: клиент может
// дергать его на каждое изменение формы.
type UseCase struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(settingsRepo SettingsRepository, logger Logger) *UseCase {
	return &UseCase{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute рассчитывает детализированную стоимость для диапазона дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Quote, error) {
	if err := req.CheckIn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid check-in date: %v", ErrInvalidInput, err)
	}
	if err := req.CheckOut.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid check-out date: %v", ErrInvalidInput, err)
	}

	rates, err := uc.settingsRepo.GetRateConfig(ctx)
	if err != nil {
		uc.logger.Error("CalculatePrice: failed to load rate config: %v", err)
		return nil, fmt.Errorf("%w: failed to load rate config: %v", ErrInternal, err)
	}

	quote, err := domain.CalculateQuote(req.CheckIn, req.CheckOut, req.GuestCount, rates)
	if err != nil {
		uc.logger.Warn("CalculatePrice: calculation failed: %v", err)
		if errors.Is(err, domain.ErrTooManyGuests) {
			return nil, fmt.Errorf("%w: maximum is %d", ErrTooManyGuests, rates.MaxGuests)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return quote, nil
}

package create_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/pkg/pgerr"
)

// UseCase use case создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	blockedRepo     BlockedDateRepository
	settingsRepo    SettingsRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	blockedRepo BlockedDateRepository,
	settingsRepo SettingsRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		blockedRepo:     blockedRepo,
		settingsRepo:    settingsRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает бронирование.
// Проверка конфликта дат и вставка выполняются в одной serializable-транзакции
// с блокировкой строк диапазона (FOR UPDATE): из двух одновременных запросов
// на пересекающиеся даты успешным будет ровно один. Диапазон дат никогда
// не блокируется частично — любая ошибка откатывает транзакцию целиком.
//
// FOR UPDATE блокирует только существующие строки: когда оба запроса видят
// свободный диапазон, проигравшую вставку обрывает сам PostgreSQL
// (serialization failure). Такая транзакция перезапускается один раз —
// повтор видит уже закоммиченные даты и возвращает ErrDatesConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: guest=%s, guests=%d, check_in=%s, check_out=%s",
		req.GuestName, req.GuestCount, req.CheckIn, req.CheckOut)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	guestName := strings.TrimSpace(req.GuestName)

	var (
		result *domain.Reservation
		quote  *domain.Quote
		rates  *domain.RateConfig
	)

	// 2. Конфликт-чек, расчет и вставка — одна атомарная единица
	txFn := func(txCtx context.Context) error {
		// 2.1. Загружаем актуальные тарифы
		var err error
		rates, err = uc.settingsRepo.GetRateConfig(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load rate config: %v", err)
			return fmt.Errorf("%w: failed to load rate config: %v", ErrInternal, err)
		}

		// 2.2. Проверяем максимум гостей
		if req.GuestCount > rates.MaxGuests {
			uc.logger.Warn("CreateBooking: guest count %d exceeds maximum %d", req.GuestCount, rates.MaxGuests)
			return fmt.Errorf("%w: maximum is %d", ErrTooManyGuests, rates.MaxGuests)
		}

		// 2.3. Блокируем диапазон и проверяем конфликты
		conflicts, err := uc.blockedRepo.LockRange(txCtx, req.CheckIn, req.CheckOut)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to lock date range: %v", err)
			return fmt.Errorf("%w: failed to lock date range: %w", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: %d dates already blocked in [%s, %s)",
				len(conflicts), req.CheckIn, req.CheckOut)
			return ErrDatesConflict
		}

		// 2.4. Рассчитываем стоимость
		quote, err = domain.CalculateQuote(req.CheckIn, req.CheckOut, req.GuestCount, rates)
		if err != nil {
			uc.logger.Warn("CreateBooking: quote calculation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 2.5. Сохраняем бронирование.
		// Предоплата равна полной стоимости: оплата проходит
		// по телефону или в Telegram, вне сервиса.
		reservation := &domain.Reservation{
			GuestName:  guestName,
			Phone:      req.Phone,
			GuestCount: req.GuestCount,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
			TotalPrice: quote.TotalPrice,
			Prepayment: quote.TotalPrice,
			Comment:    req.Comment,
			Status:     domain.StatusPending,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		// 2.6. Блокируем каждую ночь диапазона с привязкой к бронированию
		for d := req.CheckIn; d.Before(req.CheckOut); d = d.Next() {
			block := &domain.BlockedDate{
				Date:          d,
				Reason:        "Бронирование " + guestName,
				ReservationID: &created.ID,
			}
			if err := uc.blockedRepo.Block(txCtx, block); err != nil {
				uc.logger.Error("CreateBooking: failed to block date %s: %v", d, err)
				return fmt.Errorf("%w: failed to block date %s: %w", ErrInternal, d, err)
			}
		}

		result = created
		return nil
	}

	err := uc.txManager.DoSerializable(ctx, txFn)
	if err != nil && pgerr.IsConcurrencyConflict(err) {
		uc.logger.Warn("CreateBooking: transaction lost a concurrent race, retrying once: %v", err)
		err = uc.txManager.DoSerializable(ctx, txFn)
		if err != nil && pgerr.IsConcurrencyConflict(err) {
			// Диапазон оспаривается и после повтора — для клиента это конфликт дат
			err = ErrDatesConflict
		}
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created reservation id=%s, total=%.0f",
		result.ID, result.TotalPrice)

	// 3. Уведомляем оператора после коммита, вне блокировок.
	// Ошибка уведомления не влияет на результат бронирования.
	if err := uc.notifier.NotifyNewReservation(ctx, result); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify operator: %v", err)
	}

	return &Response{
		ID:                 result.ID,
		GuestName:          result.GuestName,
		Phone:              result.Phone,
		GuestCount:         result.GuestCount,
		CheckIn:            result.CheckIn,
		CheckOut:           result.CheckOut,
		Comment:            result.Comment,
		Status:             string(result.Status),
		CreatedAt:          result.CreatedAt,
		Quote:              quote,
		PendingCancelHours: rates.PendingCancelHours,
	}, nil
}

package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/lesnoydomik/booking-service/internal/domain"
	"github.com/lesnoydomik/booking-service/internal/ical"
	"github.com/lesnoydomik/booking-service/internal/service/availability/models"
	"github.com/lesnoydomik/booking-service/pkg/types"
)

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Service сервис управления занятостью календаря
type Service struct {
	repo         BlockedDateRepository
	timeProvider TimeProvider
	logger       Logger

	domain       string
	calendarName string
}

func New(repo BlockedDateRepository, timeProvider TimeProvider, logger Logger, siteDomain, calendarName string) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
		domain:       siteDomain,
		calendarName: calendarName,
	}
}

// ListDates возвращает все занятые даты (публичный календарь занятости)
func (s *Service) ListDates(ctx context.Context) ([]types.Date, error) {
	blocked, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Service availability: ListDates - не удалось получить даты: %v", err)
		return nil, fmt.Errorf("%w: ListDates: %v", ErrInternal, err)
	}

	dates := make([]types.Date, 0, len(blocked))
	for _, b := range blocked {
		dates = append(dates, b.Date)
	}
	return dates, nil
}

// ListBlocked возвращает занятые даты с метаданными о происхождении
func (s *Service) ListBlocked(ctx context.Context) ([]models.BlockedDateInfo, error) {
	blocked, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Service availability: ListBlocked - не удалось получить даты: %v", err)
		return nil, fmt.Errorf("%w: ListBlocked: %v", ErrInternal, err)
	}

	infos := make([]models.BlockedDateInfo, 0, len(blocked))
	for _, b := range blocked {
		info := models.BlockedDateInfo{
			Date:   b.Date,
			Reason: b.Reason,
			Origin: string(b.Origin()),
		}
		if b.ReservationID != nil {
			id := b.ReservationID.String()
			info.BookingID = &id
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// BlockDate вручную блокирует дату. Если дата уже занята, операция
// ничего не меняет и не считается ошибкой.
func (s *Service) BlockDate(ctx context.Context, date types.Date, reason string) error {
	if err := date.Validate(); err != nil {
		return fmt.Errorf("%w: BlockDate: %v", ErrInvalidDate, err)
	}
	if reason == "" {
		reason = domain.ManualBlockReason
	}

	err := s.repo.Block(ctx, &domain.BlockedDate{
		Date:   date,
		Reason: reason,
	})
	if err != nil {
		s.logger.Error("Service availability: BlockDate - не удалось заблокировать дату %s: %v", date, err)
		return fmt.Errorf("%w: BlockDate: %v", ErrInternal, err)
	}

	s.logger.Info("Service availability: дата %s заблокирована вручную", date)
	return nil
}

// UnblockDate снимает ручную блокировку даты. Даты, занятые бронированием
// или пришедшие из внешнего календаря, снять нельзя.
func (s *Service) UnblockDate(ctx context.Context, date types.Date) (*models.UnblockResult, error) {
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: UnblockDate: %v", ErrInvalidDate, err)
	}

	deleted, err := s.repo.DeleteManual(ctx, date)
	if err != nil {
		s.logger.Error("Service availability: UnblockDate - не удалось разблокировать дату %s: %v", date, err)
		return nil, fmt.Errorf("%w: UnblockDate: %v", ErrInternal, err)
	}

	if deleted == 0 {
		// Либо даты нет вовсе, либо её блокировка защищена
		existing, getErr := s.repo.GetByDate(ctx, date)
		if getErr == nil && existing != nil {
			return nil, fmt.Errorf("%w: UnblockDate - дата %s занята (%s)", ErrDateProtected, date, existing.Origin())
		}
		return &models.UnblockResult{Date: date, Deleted: false}, nil
	}

	s.logger.Info("Service availability: ручная блокировка даты %s снята", date)
	return &models.UnblockResult{Date: date, Deleted: true}, nil
}

// ExportICal формирует iCalendar-ленту занятости для внешних площадок.
// Даты, пришедшие из внешнего календаря, не включаются, чтобы не
// зациклить синхронизацию.
func (s *Service) ExportICal(ctx context.Context) ([]byte, error) {
	dates, err := s.repo.ListLocalDates(ctx)
	if err != nil {
		s.logger.Error("Service availability: ExportICal - не удалось получить даты: %v", err)
		return nil, fmt.Errorf("%w: ExportICal: %v", ErrInternal, err)
	}

	ics := ical.Encode(dates, ical.EncodeOptions{
		Domain:       s.domain,
		CalendarName: s.calendarName,
		Summary:      "Занято — Лесной Домик",
		Now:          s.timeProvider.Now(),
	})
	return []byte(ics), nil
}

package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lesnoydomik/booking-service/internal/domain"
	reservationRepo "github.com/lesnoydomik/booking-service/internal/infra/storage/reservation"
	"github.com/lesnoydomik/booking-service/internal/service/reservations/models"
)

// Service сервис администрирования бронирований
type Service struct {
	reservationRepo ReservationRepository
	blockedRepo     BlockedDateRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	blockedRepo BlockedDateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		blockedRepo:     blockedRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// List возвращает страницу бронирований с метаданными пагинации
func (s *Service) List(ctx context.Context, page, limit int) (*models.ReservationListResponse, error) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}
	offset := (page - 1) * limit

	total, err := s.reservationRepo.Count(ctx)
	if err != nil {
		s.logger.Error("List: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	list, err := s.reservationRepo.List(ctx, uint64(limit), uint64(offset))
	if err != nil {
		s.logger.Error("List: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &models.ReservationListResponse{
		Reservations: models.FromDomainReservationList(list),
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// UpdateStatus переводит бронирование в новый статус.
// Переход проверяется машиной состояний; при отмене даты бронирования
// разблокируются в той же транзакции, что и смена статуса.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, statusStr string) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%s, target status=%s", id, statusStr)

	status, ok := domain.ParseReservationStatus(statusStr)
	if !ok {
		s.logger.Warn("UpdateStatus: unknown status %q", statusStr)
		return nil, ErrInvalidStatus
	}

	var updated *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, id, true)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !res.CanTransitionTo(status) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for id=%s",
				res.Status, status, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, status)
		}

		// Отмена освобождает все даты бронирования
		if status == domain.StatusCancelled {
			deleted, err := s.blockedRepo.DeleteByReservation(txCtx, id)
			if err != nil {
				return fmt.Errorf("%w: UpdateStatus - failed to unblock dates: %v", ErrInternal, err)
			}
			s.logger.Info("UpdateStatus: unblocked %d dates for cancelled reservation id=%s", deleted, id)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, status); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		res.Status = status
		updated = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: reservation id=%s is now %s", id, updated.Status)
	return models.FromDomainReservation(updated), nil
}

// Purge физически удаляет бронирование вместе с его датами.
// Разрешено только для отмененных бронирований.
func (s *Service) Purge(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Purge: deleting reservation id=%s", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, id, true)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
		}

		if !res.CanBePurged() {
			s.logger.Warn("Purge: reservation id=%s has status %s, refusing", id, res.Status)
			return ErrNotCancelled
		}

		if _, err := s.blockedRepo.DeleteByReservation(txCtx, id); err != nil {
			return fmt.Errorf("%w: Purge - failed to delete blocked dates: %v", ErrInternal, err)
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Purge: reservation id=%s deleted", id)
	return nil
}

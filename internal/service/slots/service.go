package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots/models"
)

// Service управляет жизненным циклом слота
// Единственный писатель статуса слота после создания. Каждый переход
// выполняется по схеме чтение-валидация-запись, где запись - это
// compare-and-set по статусу одного слота:
//
//	open    --Block-->   blocked
//	blocked --Unblock--> open
//	open    --Book-->    booked   (вызывается сервисом бронирования)
//	booked  --Cancel-->  open     (вызывается сервисом бронирования)
//
// При гонке одновременных переходов проигравший получает ErrConflict
// и повторяет операцию сам - ожидания на строке нет
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Block снимает открытый слот с доступности
// Разрешено только владеющему технику и только из статуса open:
// занятый клиентом слот заблокировать нельзя
func (s *Service) Block(ctx context.Context, slotID, technicianID int64) (*models.SlotResponse, error) {
	s.logger.Info("Block: slot=%d by technician=%d", slotID, technicianID)

	slot, err := s.getOwnedSlot(ctx, slotID, technicianID, "Block")
	if err != nil {
		return nil, err
	}

	if !slot.CanBeBlocked() {
		if slot.Status == domain.StatusBooked {
			s.logger.Warn("Block: slot=%d is booked, cannot block", slotID)
			return nil, ErrSlotBooked
		}
		s.logger.Warn("Block: slot=%d already in status=%s", slotID, slot.Status)
		return nil, fmt.Errorf("%w: slot is already %s", ErrInvalidTransition, slot.Status)
	}

	return s.transition(ctx, slot, domain.StatusOpen, domain.StatusBlocked, nil, "Block")
}

// Unblock возвращает заблокированный слот в доступность
// Unblock уже открытого слота отклоняется, а не проглатывается -
// это сигнал о рассинхронизации состояния клиента
func (s *Service) Unblock(ctx context.Context, slotID, technicianID int64) (*models.SlotResponse, error) {
	s.logger.Info("Unblock: slot=%d by technician=%d", slotID, technicianID)

	slot, err := s.getOwnedSlot(ctx, slotID, technicianID, "Unblock")
	if err != nil {
		return nil, err
	}

	if !slot.CanBeUnblocked() {
		s.logger.Warn("Unblock: slot=%d is not blocked, status=%s", slotID, slot.Status)
		return nil, fmt.Errorf("%w: slot is %s, not blocked", ErrInvalidTransition, slot.Status)
	}

	return s.transition(ctx, slot, domain.StatusBlocked, domain.StatusOpen, nil, "Unblock")
}

// Book занимает открытый слот бронированием клиента
// Вызывается сервисом бронирования, проходит через ту же машину состояний,
// что и block/unblock
func (s *Service) Book(ctx context.Context, slotID, customerID int64) (*models.SlotResponse, error) {
	s.logger.Info("Book: slot=%d by customer=%d", slotID, customerID)

	slot, err := s.getSlot(ctx, slotID, "Book")
	if err != nil {
		return nil, err
	}

	if !slot.CanBeBooked() {
		s.logger.Warn("Book: slot=%d is not open, status=%s", slotID, slot.Status)
		return nil, fmt.Errorf("%w: slot is %s, not open", ErrInvalidTransition, slot.Status)
	}

	return s.transition(ctx, slot, domain.StatusOpen, domain.StatusBooked, &customerID, "Book")
}

// Cancel освобождает занятый слот после отмены бронирования
// Вызывается сервисом бронирования; слот возвращается в open
func (s *Service) Cancel(ctx context.Context, slotID int64) (*models.SlotResponse, error) {
	s.logger.Info("Cancel: slot=%d", slotID)

	slot, err := s.getSlot(ctx, slotID, "Cancel")
	if err != nil {
		return nil, err
	}

	if !slot.CanBeCancelled() {
		s.logger.Warn("Cancel: slot=%d is not booked, status=%s", slotID, slot.Status)
		return nil, fmt.Errorf("%w: slot is %s, not booked", ErrInvalidTransition, slot.Status)
	}

	return s.transition(ctx, slot, domain.StatusBooked, domain.StatusOpen, nil, "Cancel")
}

// GetByID получает слот по ID для владеющего техника
func (s *Service) GetByID(ctx context.Context, slotID, technicianID int64) (*models.SlotResponse, error) {
	s.logger.Info("GetByID: slot=%d for technician=%d", slotID, technicianID)

	slot, err := s.getOwnedSlot(ctx, slotID, technicianID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainSlot(slot), nil
}

// transition применяет CAS переход from->to и перечитывает зафиксированное состояние
// Если CAS не прошёл, различает исчезновение строки и гонку статусов
func (s *Service) transition(ctx context.Context, slot *domain.Slot, from, to domain.SlotStatus, bookedBy *int64, op string) (*models.SlotResponse, error) {
	err := s.slotRepo.UpdateStatusCAS(ctx, slot.ID, from, to, bookedBy)
	if err != nil {
		if errors.Is(err, slotRepo.ErrStatusConflict) {
			// Статус ушёл из-под нас между чтением и записью
			current, getErr := s.slotRepo.GetByID(ctx, slot.ID)
			if getErr != nil {
				if errors.Is(getErr, slotRepo.ErrSlotNotFound) {
					s.logger.Warn("%s: slot=%d disappeared during transition", op, slot.ID)
					return nil, ErrSlotNotFound
				}
				s.logger.Error("%s: failed to re-read slot=%d after CAS miss: %v", op, slot.ID, getErr)
				return nil, fmt.Errorf("%w: %s - re-read after CAS miss: %v", ErrInternal, op, getErr)
			}

			s.logger.Warn("%s: slot=%d lost the race, status changed %s -> %s",
				op, slot.ID, from, current.Status)
			return nil, fmt.Errorf("%w: status is now %s", ErrConflict, current.Status)
		}

		s.logger.Error("%s: repository error for slot=%d: %v", op, slot.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	// Перечитываем, чтобы вернуть зафиксированное состояние (updated_at из БД)
	updated, err := s.slotRepo.GetByID(ctx, slot.ID)
	if err != nil {
		s.logger.Error("%s: failed to re-read slot=%d after transition: %v", op, slot.ID, err)
		return nil, fmt.Errorf("%w: %s - re-read after transition: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: slot=%d transitioned %s -> %s", op, slot.ID, from, to)
	return models.FromDomainSlot(updated), nil
}

// getOwnedSlot получает слот и проверяет владение
// Чужой слот неотличим от несуществующего
func (s *Service) getOwnedSlot(ctx context.Context, slotID, technicianID int64, op string) (*domain.Slot, error) {
	slot, err := s.getSlot(ctx, slotID, op)
	if err != nil {
		return nil, err
	}

	if slot.TechnicianID != technicianID {
		s.logger.Warn("%s: slot=%d belongs to technician=%d, requested by technician=%d",
			op, slotID, slot.TechnicianID, technicianID)
		return nil, ErrSlotNotFound
	}

	return slot, nil
}

func (s *Service) getSlot(ctx context.Context, slotID int64, op string) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot=%d not found", op, slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot=%d: %v", op, slotID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return slot, nil
}

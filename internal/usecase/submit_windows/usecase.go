package submit_windows

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
)

// UseCase use case публикации рабочих окон техника
// Валидирует выбранные даты и окно, разворачивает окно в слоты
// и сохраняет их, пропуская уже существующие
type UseCase struct {
	slotRepo     SlotRepository
	policy       domain.DateConstraintPolicy
	generator    *Generator
	maxDates     int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	policy domain.DateConstraintPolicy,
	generator *Generator,
	maxDates int,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		policy:       policy,
		generator:    generator,
		maxDates:     maxDates,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет публикацию рабочих окон
// Каждый слот вставляется независимо: дубликат не прерывает вставку остальных,
// а уже существующие слоты (включая занятые) никогда не перезаписываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitWindows: technician=%d, dates=%d, window=%s-%s",
		req.TechnicianID, len(req.Dates), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitWindows: validation failed: %v", err)
		return nil, err
	}

	// 2. Схлопываем дубликаты дат и проверяем лимит выборки
	// до какой-либо генерации слотов
	dates := dedupeDates(req.Dates)
	if len(dates) > uc.maxDates {
		uc.logger.Warn("SubmitWindows: technician=%d selected %d dates, limit is %d",
			req.TechnicianID, len(dates), uc.maxDates)
		return nil, fmt.Errorf("%w: %d dates selected, at most %d allowed", ErrTooManyDates, len(dates), uc.maxDates)
	}

	// 3. Применяем политику выбора дат (непроходящие даты пропускаются, не фатально)
	now := uc.timeProvider.Now()
	selected, skipped := selectDates(dates, uc.policy, now)
	if len(skipped) > 0 {
		uc.logger.Warn("SubmitWindows: technician=%d, %d of %d dates rejected by date policy",
			req.TechnicianID, len(skipped), len(dates))
	}

	response := &Response{
		Created:    make([]Slot, 0),
		Duplicates: make([]Slot, 0),
		Skipped:    skipped,
	}

	// 4. Генерируем и сохраняем слоты в порядке дата-затем-время
	for _, date := range selected {
		slots, err := uc.generator.Generate(req.TechnicianID, date, req.StartTime, req.EndTime)
		if err != nil {
			// Окно одинаково для всех дат, поэтому ошибка генерации фатальна целиком
			uc.logger.Warn("SubmitWindows: technician=%d, window rejected: %v", req.TechnicianID, err)
			return nil, err
		}

		for _, s := range slots {
			created, err := uc.slotRepo.Create(ctx, s)
			if err == nil {
				response.Created = append(response.Created, fromDomainSlot(created))
				continue
			}

			if errors.Is(err, slotRepo.ErrDuplicateSlot) {
				// Сообщаем, какой именно слот пропущен, вместе с его текущим состоянием
				existing, getErr := uc.slotRepo.GetByIdentity(ctx, s.TechnicianID, s.Date, s.StartTime)
				if getErr != nil {
					uc.logger.Error("SubmitWindows: failed to fetch duplicate slot technician=%d date=%s start=%s: %v",
						s.TechnicianID, s.Date.Format(domain.DateFormat), s.StartTime, getErr)
					return nil, fmt.Errorf("%w: failed to fetch duplicate slot: %v", ErrInternal, getErr)
				}
				response.Duplicates = append(response.Duplicates, fromDomainSlot(existing))
				continue
			}

			uc.logger.Error("SubmitWindows: failed to create slot technician=%d date=%s start=%s: %v",
				s.TechnicianID, s.Date.Format(domain.DateFormat), s.StartTime, err)
			return nil, fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("SubmitWindows: technician=%d, created=%d, duplicates=%d, skipped=%d",
		req.TechnicianID, len(response.Created), len(response.Duplicates), len(response.Skipped))

	return response, nil
}

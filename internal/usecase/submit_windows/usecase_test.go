package submit_windows

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ---- фейки ----

type fakeSlotRepo struct {
	slots  map[string]*domain.Slot
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*domain.Slot), nextID: 1}
}

func identityKey(technicianID int64, date time.Time, startTime types.TimeString) string {
	return fmt.Sprintf("%d|%s|%s", technicianID, date.Format(domain.DateFormat), startTime)
}

func (r *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	key := identityKey(s.TechnicianID, s.Date, s.StartTime)
	if _, exists := r.slots[key]; exists {
		return nil, slotRepo.ErrDuplicateSlot
	}

	stored := *s
	stored.ID = r.nextID
	r.nextID++
	r.slots[key] = &stored

	result := stored
	return &result, nil
}

func (r *fakeSlotRepo) GetByIdentity(_ context.Context, technicianID int64, date time.Time, startTime types.TimeString) (*domain.Slot, error) {
	if s, ok := r.slots[identityKey(technicianID, date, startTime)]; ok {
		result := *s
		return &result, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func setupUseCase(t *testing.T, repo *fakeSlotRepo, maxDates int) *UseCase {
	t.Helper()

	// Каталог с ранними окончаниями, чтобы окно 09:00-12:00 было допустимым
	catalog, err := domain.NewTimeWindowCatalog("06:00", "14:00", "12:00", "22:00", 60)
	require.NoError(t, err)

	uc := NewUseCase(
		repo,
		domain.NewDateConstraintPolicy(time.Sunday),
		NewGenerator(catalog, GeneratorConfig{SplitWindows: false}),
		maxDates,
		nopLogger{},
	)
	// Сегодня понедельник 09-03-2026: доступны даты с 10-03-2026, кроме воскресений
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)}
	return uc
}

func date(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

// ---- тесты ----

func TestUseCase_Execute_CreatesOpenSlots(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := setupUseCase(t, repo, 7)

	resp, err := uc.Execute(context.Background(), &Request{
		TechnicianID: 42,
		Dates:        []time.Time{date(10), date(11)},
		StartTime:    "09:00",
		EndTime:      "12:00",
	})
	require.NoError(t, err)

	require.Len(t, resp.Created, 2)
	assert.Empty(t, resp.Duplicates)
	assert.Empty(t, resp.Skipped)

	for _, s := range resp.Created {
		assert.Equal(t, int64(42), s.TechnicianID)
		assert.Equal(t, types.TimeString("09:00"), s.StartTime)
		assert.Equal(t, types.TimeString("12:00"), s.EndTime)
		assert.Equal(t, string(domain.StatusOpen), s.Status)
		assert.NotZero(t, s.ID)
	}

	// Слоты идут в порядке возрастания дат
	assert.Equal(t, date(10), resp.Created[0].Date)
	assert.Equal(t, date(11), resp.Created[1].Date)
}

func TestUseCase_Execute_ResubmitReportsDuplicates(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := setupUseCase(t, repo, 7)

	req := &Request{
		TechnicianID: 42,
		Dates:        []time.Time{date(10), date(11)},
		StartTime:    "09:00",
		EndTime:      "12:00",
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, first.Created, 2)

	// Повторная публикация того же окна: ничего не создано, существующие
	// слоты возвращены как дубликаты и не перезаписаны
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	require.Len(t, second.Duplicates, 2)
	assert.Equal(t, first.Created[0].ID, second.Duplicates[0].ID)
	assert.Equal(t, first.Created[1].ID, second.Duplicates[1].ID)
}

func TestUseCase_Execute_TooManyDatesFailsBeforeCreation(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := setupUseCase(t, repo, 7)

	dates := make([]time.Time, 0, 8)
	for day := 10; day <= 17; day++ {
		dates = append(dates, date(day))
	}

	_, err := uc.Execute(context.Background(), &Request{
		TechnicianID: 42,
		Dates:        dates,
		StartTime:    "09:00",
		EndTime:      "12:00",
	})
	require.ErrorIs(t, err, ErrTooManyDates)

	// Ни один слот не создан
	assert.Empty(t, repo.slots)
}

func TestUseCase_Execute_DuplicateDatesCollapseBeforeLimit(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := setupUseCase(t, repo, 2)

	// Три элемента, но только две различные даты: лимит 2 проходит
	resp, err := uc.Execute(context.Background(), &Request{
		TechnicianID: 42,
		Dates:        []time.Time{date(10), date(10), date(11)},
		StartTime:    "09:00",
		EndTime:      "12:00",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Created, 2)
}

func TestUseCase_Execute_SkipsDatesRejectedByPolicy(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := setupUseCase(t, repo, 7)

	// 15-03-2026 воскресенье, 09-03-2026 сегодня: обе даты пропускаются
	resp, err := uc.Execute(context.Background(), &Request{
		TechnicianID: 42,
		Dates:        []time.Time{date(15), date(9), date(10)},
		StartTime:    "09:00",
		EndTime:      "12:00",
	})
	require.NoError(t, err)

	require.Len(t, resp.Created, 1)
	assert.Equal(t, date(10), resp.Created[0].Date)
	assert.Len(t, resp.Skipped, 2)
}

func TestUseCase_Execute_InvalidWindow(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := setupUseCase(t, repo, 7)

	// Конец не позже начала
	_, err := uc.Execute(context.Background(), &Request{
		TechnicianID: 42,
		Dates:        []time.Time{date(10)},
		StartTime:    "12:00",
		EndTime:      "12:00",
	})
	require.ErrorIs(t, err, ErrInvalidWindow)
	assert.Empty(t, repo.slots)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	uc := setupUseCase(t, newFakeSlotRepo(), 7)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{TechnicianID: 0, Dates: []time.Time{date(10)}, StartTime: "09:00", EndTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{TechnicianID: 42, Dates: nil, StartTime: "09:00", EndTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{TechnicianID: 42, Dates: []time.Time{date(10)}, StartTime: "", EndTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{TechnicianID: 42, Dates: []time.Time{date(10)}, StartTime: "9am", EndTime: "14:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

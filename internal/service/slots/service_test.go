package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// ---- фейки ----

type fakeSlotRepo struct {
	slots map[int64]*domain.Slot

	// casInterceptor позволяет тесту подменить состояние между чтением
	// и CAS, воспроизводя гонку одновременных переходов
	casInterceptor func()
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[int64]*domain.Slot)}
	for _, s := range slots {
		stored := *s
		r.slots[s.ID] = &stored
	}
	return r
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	result := *s
	return &result, nil
}

func (r *fakeSlotRepo) UpdateStatusCAS(_ context.Context, id int64, from, to domain.SlotStatus, bookedBy *int64) error {
	if r.casInterceptor != nil {
		r.casInterceptor()
	}

	s, ok := r.slots[id]
	if !ok {
		return slotRepo.ErrStatusConflict
	}
	if s.Status != from {
		return slotRepo.ErrStatusConflict
	}

	s.Status = to
	s.BookedBy = bookedBy
	s.UpdatedAt = time.Now()
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func openSlot(id, technicianID int64) *domain.Slot {
	return &domain.Slot{
		ID:           id,
		TechnicianID: technicianID,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "12:00",
		Status:       domain.StatusOpen,
	}
}

func withStatus(s *domain.Slot, status domain.SlotStatus) *domain.Slot {
	s.Status = status
	return s
}

// ---- Block / Unblock ----

func TestService_Block_OpenSlot(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Block(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusBlocked), resp.Status)
	assert.Equal(t, []string{"unblock"}, resp.AllowedActions)
	assert.Equal(t, domain.StatusBlocked, repo.slots[1].Status)
}

func TestService_Block_BookedSlotRejected(t *testing.T) {
	repo := newFakeSlotRepo(withStatus(openSlot(1, 42), domain.StatusBooked))
	svc := NewService(repo, nopLogger{})

	_, err := svc.Block(context.Background(), 1, 42)
	require.ErrorIs(t, err, ErrSlotBooked)

	// Статус не изменился
	assert.Equal(t, domain.StatusBooked, repo.slots[1].Status)
}

func TestService_Block_AlreadyBlocked(t *testing.T) {
	repo := newFakeSlotRepo(withStatus(openSlot(1, 42), domain.StatusBlocked))
	svc := NewService(repo, nopLogger{})

	_, err := svc.Block(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_BlockThenUnblock_ReturnsToOpen(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.Block(ctx, 1, 42)
	require.NoError(t, err)

	resp, err := svc.Unblock(ctx, 1, 42)
	require.NoError(t, err)

	// Слот снова доступен для бронирования
	assert.Equal(t, string(domain.StatusOpen), resp.Status)
	assert.Equal(t, []string{"block"}, resp.AllowedActions)
}

func TestService_Unblock_OpenSlotRejected(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	// Unblock открытого слота - сигнал рассинхронизации, не no-op
	_, err := svc.Unblock(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// ---- владение и отсутствие ----

func TestService_Block_NotFound(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), nopLogger{})

	_, err := svc.Block(context.Background(), 99, 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestService_Block_ForeignSlotLooksAbsent(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	// Чужой слот неотличим от несуществующего
	_, err := svc.Block(context.Background(), 1, 77)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Equal(t, domain.StatusOpen, repo.slots[1].Status)
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10-03-2026", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)

	_, err = svc.GetByID(context.Background(), 1, 77)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

// ---- Book / Cancel ----

func TestService_Book_OpenSlot(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Book(context.Background(), 1, 500)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	require.NotNil(t, resp.BookedBy)
	assert.Equal(t, int64(500), *resp.BookedBy)
	assert.Empty(t, resp.AllowedActions)
}

func TestService_Book_BlockedSlotRejected(t *testing.T) {
	repo := newFakeSlotRepo(withStatus(openSlot(1, 42), domain.StatusBlocked))
	svc := NewService(repo, nopLogger{})

	_, err := svc.Book(context.Background(), 1, 500)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Cancel_BookedSlot(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.Book(ctx, 1, 500)
	require.NoError(t, err)

	resp, err := svc.Cancel(ctx, 1)
	require.NoError(t, err)

	// Отмена возвращает слот в open и очищает бронирование
	assert.Equal(t, string(domain.StatusOpen), resp.Status)
	assert.Nil(t, resp.BookedBy)
}

func TestService_Cancel_OpenSlotRejected(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	_, err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// ---- гонки ----

func TestService_Block_ConcurrentModificationConflict(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	// Между чтением и CAS слот занимает клиент
	repo.casInterceptor = func() {
		repo.slots[1].Status = domain.StatusBooked
		repo.slots[1].BookedBy = ptr.Ptr(int64(500))
	}

	_, err := svc.Block(context.Background(), 1, 42)
	require.ErrorIs(t, err, ErrConflict)

	// Проигравшая операция ничего не перезаписала
	assert.Equal(t, domain.StatusBooked, repo.slots[1].Status)
}

func TestService_Book_ConcurrentModificationConflict(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	// Между чтением и CAS техник блокирует слот
	repo.casInterceptor = func() {
		repo.slots[1].Status = domain.StatusBlocked
	}

	_, err := svc.Book(context.Background(), 1, 500)
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, domain.StatusBlocked, repo.slots[1].Status)
}

func TestService_Block_SlotDisappearsDuringTransition(t *testing.T) {
	repo := newFakeSlotRepo(openSlot(1, 42))
	svc := NewService(repo, nopLogger{})

	repo.casInterceptor = func() {
		delete(repo.slots, 1)
	}

	_, err := svc.Block(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

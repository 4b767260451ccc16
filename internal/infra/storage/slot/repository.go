package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// slotColumns колонки таблицы slots в порядке сканирования
var slotColumns = []string{
	"id",
	"technician_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"booked_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает один слот
// При конфликте идентичности (technician_id, slot_date, start_time) существующая
// строка не перезаписывается - возвращается ErrDuplicateSlot. Состояние уже
// существующего слота (в том числе booked) никогда не затирается повторной
// публикацией окна на то же время.
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"technician_id",
			"slot_date",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			s.TechnicianID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Status,
		).
		Suffix("ON CONFLICT (technician_id, slot_date, start_time) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	// DO NOTHING не возвращает строку при конфликте
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateSlot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlotRow(r.db.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByIdentity получает слот по его естественной идентичности
// (technician_id, slot_date, start_time)
func (r *Repository) GetByIdentity(ctx context.Context, technicianID int64, date time.Time, startTime types.TimeString) (*domain.Slot, error) {
	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{
			"technician_id": technicianID,
			"slot_date":     date,
			"start_time":    startTime,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdentity - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlotRow(r.db.QueryRowContext(ctx, query, args...), "GetByIdentity")
}

// ListByTechnician получает слоты техника начиная с указанной даты
// Слоты отсортированы по дате и времени начала (start_time сравнивается
// в БД как TIME, а не как строка)
func (r *Repository) ListByTechnician(ctx context.Context, technicianID int64, fromDate time.Time) ([]*domain.Slot, error) {
	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"technician_id": technicianID}).
		Where(squirrel.GtOrEq{"slot_date": fromDate}).
		OrderBy("slot_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTechnician - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTechnician - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// UpdateStatusCAS атомарно переводит слот из статуса from в статус to
// Запись проходит только если текущий статус равен from (optimistic locking,
// эквивалент построчной блокировки на один слот).
// Возвращает ErrStatusConflict, если статус изменился между чтением и записью -
// вызывающая сторона перечитывает слот и различает NotFound / гонку / недопустимый переход.
func (r *Repository) UpdateStatusCAS(ctx context.Context, id int64, from, to domain.SlotStatus, bookedBy *int64) error {
	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("booked_by", bookedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlotRow(row *sql.Row, method string) (*domain.Slot, error) {
	s, err := scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, method, err)
	}
	return s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func scanSlot(scanner rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := scanner.Scan(
		&s.ID,
		&s.TechnicianID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.BookedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

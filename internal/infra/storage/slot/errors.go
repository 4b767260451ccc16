package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrDuplicateSlot возвращается, когда слот с такой идентичностью
	// (technician_id, slot_date, start_time) уже существует
	ErrDuplicateSlot = errors.New("slot.repository: slot already exists")

	// ErrStatusConflict возвращается, когда compare-and-set по статусу не прошёл:
	// статус слота изменился между чтением и записью
	ErrStatusConflict = errors.New("slot.repository: slot status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)

package submit_windows

import "errors"

var (
	// ErrInvalidWindow возвращается, когда окно некорректно:
	// конец не позже начала либо граница отсутствует в каталоге времен
	ErrInvalidWindow = errors.New("submit_windows: invalid working window")

	// ErrTooManyDates возвращается, когда выбрано больше дат, чем разрешено
	// Проверяется до генерации слотов - ни один слот при этом не создается
	ErrTooManyDates = errors.New("submit_windows: too many dates selected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_windows: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_windows: internal error")
)

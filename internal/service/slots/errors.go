package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден либо принадлежит
	// другому технику - чужие слоты не раскрываются
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidTransition возвращается, когда запрошенный переход
	// недопустим из текущего статуса (например, unblock открытого слота)
	ErrInvalidTransition = errors.New("invalid slot status transition")

	// ErrSlotBooked возвращается при попытке заблокировать занятый слот
	// Отдельная ошибка, чтобы клиент различал "уже в этом статусе"
	// и "занят клиентом, блокировка невозможна"
	ErrSlotBooked = errors.New("slot is booked and cannot be blocked")

	// ErrConflict возвращается, когда статус слота изменился между чтением
	// и записью (гонка одновременных переходов). Операция не применена,
	// клиенту следует повторить запрос
	ErrConflict = errors.New("slot was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)

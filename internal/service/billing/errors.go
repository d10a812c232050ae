package billing

import "errors"

var (
	// ErrAlreadySettled комиссия по бронированию уже рассчитана
	ErrAlreadySettled = errors.New("billing: booking already settled")
	// ErrInvalidAmount некорректная сумма операции
	ErrInvalidAmount = errors.New("billing: invalid amount")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("billing: internal error")
)

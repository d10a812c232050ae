package loyalty

import "errors"

var (
	// ErrBelowMinimumRedemption запрошено меньше минимального порога списания
	ErrBelowMinimumRedemption = errors.New("loyalty: below minimum redemption")
	// ErrInsufficientPoints недостаточно доступных баллов
	ErrInsufficientPoints = errors.New("loyalty: insufficient points")
	// ErrInvalidPoints некорректное количество баллов
	ErrInvalidPoints = errors.New("loyalty: invalid points value")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("loyalty: internal error")
)

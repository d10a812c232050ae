package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrPermissionDenied возвращается, когда пользователь не владелец бронирования
	ErrPermissionDenied = errors.New("confirm_payment: permission denied")

	// ErrInvalidStateTransition возвращается при подтверждении из конечного статуса
	ErrInvalidStateTransition = errors.New("confirm_payment: invalid state transition")

	// ErrInsufficientPoints возвращается, когда зарезервированных баллов больше нет
	ErrInsufficientPoints = errors.New("confirm_payment: insufficient loyalty points")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)

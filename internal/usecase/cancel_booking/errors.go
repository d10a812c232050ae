package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrVendorNotFound возвращается, когда салон не найден
	ErrVendorNotFound = errors.New("cancel_booking: vendor not found")

	// ErrPermissionDenied возвращается, когда пользователь не может отменить бронирование
	ErrPermissionDenied = errors.New("cancel_booking: permission denied")

	// ErrCannotCancel возвращается при отмене из конечного или активного статуса
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

package bookings

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")
	// ErrVendorNotFound салон не найден
	ErrVendorNotFound = errors.New("bookings: vendor not found")
	// ErrAccessDenied доступ к бронированию запрещен
	ErrAccessDenied = errors.New("bookings: access denied")
	// ErrInvalidStateTransition переход статуса невозможен из текущего состояния
	ErrInvalidStateTransition = errors.New("bookings: invalid state transition")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings: internal error")
)

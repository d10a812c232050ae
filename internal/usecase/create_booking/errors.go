package create_booking

import "errors"

var (
	// ErrVendorNotFound возвращается, когда салон не найден
	ErrVendorNotFound = errors.New("create_booking: vendor not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrVendorClosed возвращается, когда салон закрыт в указанную дату
	ErrVendorClosed = errors.New("create_booking: vendor is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время вне сетки слотов или рабочих часов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается при попытке забронировать прошедшее время
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrBelowMinimumRedemption возвращается, когда запрошено меньше минимума баллов
	ErrBelowMinimumRedemption = errors.New("create_booking: below minimum redemption")

	// ErrInsufficientPoints возвращается, когда доступных баллов не хватает на минимум
	ErrInsufficientPoints = errors.New("create_booking: insufficient loyalty points")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

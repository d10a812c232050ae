package vendorservice

import "errors"

var (
	// ErrVendorNotFound возвращается, когда салон не найден в каталоге
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у салона
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("vendorservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("vendorservice client: invalid response")
)

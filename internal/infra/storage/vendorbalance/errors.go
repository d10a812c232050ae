package vendorbalance

import "errors"

var (
	// ErrBalanceNotFound возвращается, когда баланс салона не найден
	ErrBalanceNotFound = errors.New("vendorbalance.repository: balance not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vendorbalance.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vendorbalance.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vendorbalance.repository: failed to scan row")
)

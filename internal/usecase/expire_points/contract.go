package expire_points

import "context"

// LoyaltyService интерфейс программы лояльности
type LoyaltyService interface {
	ExpireOldPoints(ctx context.Context, batchSize uint64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

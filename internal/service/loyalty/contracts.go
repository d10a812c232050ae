package loyalty

import (
	"context"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

// LedgerRepository интерфейс репозитория леджера баллов лояльности
type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.LoyaltyTransaction) (*domain.LoyaltyTransaction, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.LoyaltyTransaction, error)
	ListByPeriod(ctx context.Context, startDate, endDate *time.Time) ([]*domain.LoyaltyTransaction, error)
	SumAvailablePoints(ctx context.Context, customerID int64, now time.Time) (int, error)
	ListExpiredUnprocessed(ctx context.Context, now time.Time, limit uint64) ([]*domain.LoyaltyTransaction, error)
	MarkExpiryProcessed(ctx context.Context, id int64) error
	AdjustBalance(ctx context.Context, customerID int64, delta int) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

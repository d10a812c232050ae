package billing

import (
	"context"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

// TransactionRepository интерфейс репозитория денежного леджера
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ExistsForBooking(ctx context.Context, bookingID int64, txType domain.TransactionType) (bool, error)
	GetByVendorID(ctx context.Context, vendorID int64, types []domain.TransactionType) ([]*domain.Transaction, error)
	GetCommissions(ctx context.Context, startDate, endDate *time.Time) ([]*domain.Transaction, error)
}

// VendorBalanceRepository интерфейс репозитория счетчиков заработка салонов
type VendorBalanceRepository interface {
	AddEarnings(ctx context.Context, vendorID int64, delta float64) error
	DeductPayout(ctx context.Context, vendorID int64, amount float64) error
	Get(ctx context.Context, vendorID int64) (*domain.VendorBalance, error)
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

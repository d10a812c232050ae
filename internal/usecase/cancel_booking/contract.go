package cancel_booking

import (
	"context"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string, tokens int, paymentStatus domain.PaymentStatus) error
}

// BillingService интерфейс возвратов по оплаченным бронированиям
type BillingService interface {
	Refund(ctx context.Context, booking *domain.Booking, refundAmount float64, reason string) (string, error)
}

// VendorServiceClient интерфейс клиента каталога салонов
type VendorServiceClient interface {
	GetVendor(ctx context.Context, vendorID int64) (*vendorservice.Vendor, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

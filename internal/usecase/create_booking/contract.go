package create_booking

import (
	"context"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) ([]*domain.Booking, error)
}

// VendorServiceClient интерфейс клиента каталога салонов
type VendorServiceClient interface {
	GetVendor(ctx context.Context, vendorID int64) (*vendorservice.Vendor, error)
	GetService(ctx context.Context, vendorID, serviceID int64) (*vendorservice.Service, error)
}

// LoyaltyService интерфейс программы лояльности
// На создании бронирования баллы не списываются: здесь только расчет
// скидки и ограничение запрошенного списания (само списание происходит
// при подтверждении оплаты)
type LoyaltyService interface {
	AvailablePoints(ctx context.Context, customerID int64) (int, error)
	RedemptionValue(points int) float64
	MaxRedeemablePoints(subtotal float64) int
	MinRedemptionPoints() int
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

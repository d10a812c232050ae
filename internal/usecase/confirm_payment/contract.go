package confirm_payment

import (
	"context"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/service/billing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ConfirmPayment(ctx context.Context, id int64, params domain.PaymentConfirmation) error
}

// LoyaltyService интерфейс программы лояльности
type LoyaltyService interface {
	Redeem(ctx context.Context, customerID int64, bookingID int64, points int) (float64, error)
	Award(ctx context.Context, customerID int64, bookingID int64, amountSpent float64) (int, error)
}

// BillingService интерфейс расчета комиссий
type BillingService interface {
	Settle(ctx context.Context, booking *domain.Booking) (*billing.SettlementResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

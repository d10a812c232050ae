package bookings

import (
	"context"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	SetNoShow(ctx context.Context, id int64, tokens int) error
}

// VendorProvider интерфейс клиента каталога салонов
type VendorProvider interface {
	GetVendor(ctx context.Context, vendorID int64) (*vendorservice.Vendor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

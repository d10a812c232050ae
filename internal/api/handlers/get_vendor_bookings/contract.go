package get_vendor_bookings

import (
	"context"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type BookingService interface {
	GetVendorBookings(ctx context.Context, userID int64, filter domain.VendorBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

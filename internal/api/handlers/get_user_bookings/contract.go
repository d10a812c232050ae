package get_user_bookings

import (
	"context"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type BookingService interface {
	GetCustomerBookings(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

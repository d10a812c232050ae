package mark_no_show

import (
	"context"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type BookingService interface {
	MarkNoShow(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

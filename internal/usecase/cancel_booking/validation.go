package cancel_booking

import (
	"fmt"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason too long (max %d)", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	switch req.CancelledBy {
	case CancelledByCustomer, CancelledByVendor, CancelledByAdmin:
		return nil
	default:
		return fmt.Errorf("%w: cancelledBy must be one of customer, vendor, admin", ErrInvalidInput)
	}
}

// cancellationTokens возвращает количество штрафных токенов за отмену.
// Штраф начисляется только при отмене самим покупателем: чем ближе к началу
// услуги, тем выше штраф. Отмены салоном или администратором бесплатны
func cancellationTokens(cancelledBy string, startsAt time.Time, now time.Time) int {
	if cancelledBy != CancelledByCustomer {
		return 0
	}

	hoursUntil := startsAt.Sub(now).Hours()
	switch {
	case hoursUntil < domain.LateCancelThresholdHours:
		return domain.TokensLateCancel
	case hoursUntil < domain.NearCancelThresholdHours:
		return domain.TokensNearCancel
	default:
		return 0
	}
}

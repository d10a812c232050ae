package confirm_payment

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PaymentMethod == "" {
		return fmt.Errorf("%w: paymentMethod is required", ErrInvalidInput)
	}

	if req.PaymentRef == "" {
		return fmt.Errorf("%w: paymentRef is required", ErrInvalidInput)
	}

	return nil
}

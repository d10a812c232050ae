package cancel_booking

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	cancelBooking "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelledBy"` // customer, vendor или admin
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID                   int64   `json:"id"`
	CustomerID           int64   `json:"customerId"`
	VendorID             int64   `json:"vendorId"`
	BookingDate          string  `json:"bookingDate"`
	StartTime            string  `json:"startTime"`
	Status               string  `json:"status"`
	PaymentStatus        string  `json:"paymentStatus"`
	FinalPrice           float64 `json:"finalPrice"`
	CancellationReason   *string `json:"cancellationReason,omitempty"`
	CancellationTokens   int     `json:"cancellationTokens"`
	CancelledAt          *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	RefundTransactionRef *string `json:"refundTransactionRef,omitempty"`
	UpdatedAt            string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		ID:                   resp.ID,
		CustomerID:           resp.CustomerID,
		VendorID:             resp.VendorID,
		BookingDate:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		Status:               resp.Status,
		PaymentStatus:        resp.PaymentStatus,
		FinalPrice:           resp.FinalPrice,
		CancellationReason:   resp.CancellationReason,
		CancellationTokens:   resp.CancellationTokens,
		RefundTransactionRef: resp.RefundTransactionRef,
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.CancelledAt != nil {
		cancelledStr := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledStr
	}

	return out
}

package confirm_payment

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	confirmPayment "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"` // "card", "upi", ...
	PaymentID     string `json:"paymentId"`     // ID платежа во внешней системе
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	ID                  int64   `json:"id"`
	CustomerID          int64   `json:"customerId"`
	VendorID            int64   `json:"vendorId"`
	ServiceID           int64   `json:"serviceId"`
	BookingDate         string  `json:"bookingDate"`
	StartTime           string  `json:"startTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Status              string  `json:"status"`
	PaymentStatus       string  `json:"paymentStatus"`
	PaymentMethod       *string `json:"paymentMethod,omitempty"`
	PaymentRef          *string `json:"paymentRef,omitempty"`
	FinalPrice          float64 `json:"finalPrice"`
	CommissionAmount    float64 `json:"commissionAmount"`
	VendorEarnings      float64 `json:"vendorEarnings"`
	LoyaltyPointsUsed   int     `json:"loyaltyPointsUsed"`
	LoyaltyPointsEarned int     `json:"loyaltyPointsEarned"`
	AlreadyPaid         bool    `json:"alreadyPaid"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		ID:                  resp.ID,
		CustomerID:          resp.CustomerID,
		VendorID:            resp.VendorID,
		ServiceID:           resp.ServiceID,
		BookingDate:         resp.BookingDate.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		PaymentStatus:       resp.PaymentStatus,
		PaymentMethod:       resp.PaymentMethod,
		PaymentRef:          resp.PaymentRef,
		FinalPrice:          resp.FinalPrice,
		CommissionAmount:    resp.CommissionAmount,
		VendorEarnings:      resp.VendorEarnings,
		LoyaltyPointsUsed:   resp.LoyaltyPointsUsed,
		LoyaltyPointsEarned: resp.LoyaltyPointsEarned,
		AlreadyPaid:         resp.AlreadyPaid,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}

package create_booking

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
	createBooking "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/create_booking"
	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VendorID        int64   `json:"vendorId"`
	ServiceID       int64   `json:"serviceId"`
	AddOnServiceIDs []int64 `json:"addOnServiceIds,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2026-01-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	LoyaltyPoints   int     `json:"loyaltyPoints,omitempty"`
	PromoCode       *string `json:"promoCode,omitempty"`
	PromoDiscount   float64 `json:"promoDiscount,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	CustomerID        int64   `json:"customerId"`
	VendorID          int64   `json:"vendorId"`
	ServiceID         int64   `json:"serviceId"`
	AddOnServiceIDs   []int64 `json:"addOnServiceIds,omitempty"`
	BookingDate       string  `json:"bookingDate"`
	StartTime         string  `json:"startTime"`
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	PaymentStatus     string  `json:"paymentStatus"`
	BasePrice         float64 `json:"basePrice"`
	AddOnPrice        float64 `json:"addOnPrice"`
	DiscountAmount    float64 `json:"discountAmount"`
	FinalPrice        float64 `json:"finalPrice"`
	LoyaltyPointsUsed int     `json:"loyaltyPointsUsed"`
	PromoCode         *string `json:"promoCode,omitempty"`
	PromoDiscount     float64 `json:"promoDiscount,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:      customerID,
		VendorID:        r.VendorID,
		ServiceID:       r.ServiceID,
		AddOnServiceIDs: r.AddOnServiceIDs,
		Date:            bookingDate,
		StartTime:       startTime,
		LoyaltyPoints:   r.LoyaltyPoints,
		PromoCode:       r.PromoCode,
		PromoDiscount:   r.PromoDiscount,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		CustomerID:        resp.CustomerID,
		VendorID:          resp.VendorID,
		ServiceID:         resp.ServiceID,
		AddOnServiceIDs:   resp.AddOnServiceIDs,
		BookingDate:       resp.BookingDate.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		DurationMinutes:   resp.DurationMinutes,
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		BasePrice:         resp.BasePrice,
		AddOnPrice:        resp.AddOnPrice,
		DiscountAmount:    resp.DiscountAmount,
		FinalPrice:        resp.FinalPrice,
		LoyaltyPointsUsed: resp.LoyaltyPointsUsed,
		PromoCode:         resp.PromoCode,
		PromoDiscount:     resp.PromoDiscount,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}

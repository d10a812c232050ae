package models

import (
	"errors"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	VendorID        int64   `json:"vendorId"`
	ServiceID       int64   `json:"serviceId"`
	AddOnServiceIDs []int64 `json:"addOnServiceIds,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2026-01-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"`

	// Разбивка цены
	BasePrice      float64 `json:"basePrice"`
	AddOnPrice     float64 `json:"addOnPrice"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`

	CommissionAmount float64 `json:"commissionAmount"`
	VendorEarnings   float64 `json:"vendorEarnings"`

	PromoCode     *string `json:"promoCode,omitempty"`
	PromoDiscount float64 `json:"promoDiscount,omitempty"`

	LoyaltyPointsUsed   int `json:"loyaltyPointsUsed"`
	LoyaltyPointsEarned int `json:"loyaltyPointsEarned"`

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancellationTokens int     `json:"cancellationTokens,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		CustomerID:          b.CustomerID,
		VendorID:            b.VendorID,
		ServiceID:           b.ServiceID,
		AddOnServiceIDs:     b.AddOnServiceIDs,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		StartTime:           b.StartTime.String(),
		DurationMinutes:     b.DurationMinutes,
		Status:              string(b.Status),
		PaymentStatus:       string(b.PaymentStatus),
		PaymentMethod:       b.PaymentMethod,
		BasePrice:           b.BasePrice,
		AddOnPrice:          b.AddOnPrice,
		DiscountAmount:      b.DiscountAmount,
		FinalPrice:          b.FinalPrice,
		CommissionAmount:    b.CommissionAmount,
		VendorEarnings:      b.VendorEarnings,
		PromoCode:           b.PromoCode,
		PromoDiscount:       b.PromoDiscount,
		LoyaltyPointsUsed:   b.LoyaltyPointsUsed,
		LoyaltyPointsEarned: b.LoyaltyPointsEarned,
		Notes:               b.Notes,
		CancellationReason:  b.CancellationReason,
		CancellationTokens:  b.CancellationTokens,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

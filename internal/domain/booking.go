package domain

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a salon appointment in the system.
// It is the aggregate root of a single transaction lifecycle: created pending,
// mutated only by lifecycle transitions, never deleted.
type Booking struct {
	ID              int64
	CustomerID      int64
	VendorID        int64
	ServiceID       int64
	AddOnServiceIDs []int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int

	// Pricing breakdown. Invariant: FinalPrice = max(0, BasePrice+AddOnPrice-DiscountAmount)
	BasePrice      float64
	AddOnPrice     float64
	DiscountAmount float64
	FinalPrice     float64

	// Settlement numbers, zero until payment confirmation
	CommissionAmount float64
	VendorEarnings   float64

	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentMethod *string
	PaymentRef    *string

	PromoCode     *string
	PromoDiscount float64

	LoyaltyPointsUsed   int
	LoyaltyPointsEarned int

	Notes *string

	CancellationReason *string
	CancellationTokens int
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// IsTerminal returns true if no further transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if payment confirmation may be applied
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCompleted returns true if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// CanBeStarted returns true if the booking can transition to in_progress
func (b *Booking) CanBeStarted() bool {
	return b.Status == StatusConfirmed
}

// CanBeMarkedNoShow returns true if the booking can transition to no_show
func (b *Booking) CanBeMarkedNoShow() bool {
	return b.Status == StatusConfirmed
}

// IsPaid returns true if payment has been received and not refunded
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// StartsAt combines the booking date and start time into a single timestamp
func (b *Booking) StartsAt() (time.Time, error) {
	minutes, err := b.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		0, 0, 0, 0, b.BookingDate.Location())
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// PaymentConfirmation carries the values written onto a booking when its
// payment is confirmed and commission is settled
type PaymentConfirmation struct {
	PaymentMethod       string
	PaymentRef          string
	CommissionAmount    float64
	VendorEarnings      float64
	LoyaltyPointsEarned int
}

// VendorBookingsFilter фильтр для получения бронирований салона
type VendorBookingsFilter struct {
	VendorID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные/отмененные бронирования
}

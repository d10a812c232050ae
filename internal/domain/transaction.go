package domain

import "time"

// TransactionType represents the kind of a money ledger entry
type TransactionType string

const (
	TransactionCommission TransactionType = "commission"
	TransactionPayout     TransactionType = "payout"
	TransactionRefund     TransactionType = "refund"
)

// TransactionStatus represents the processing state of a money ledger entry
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
)

// Transaction is a single entry of the append-only commission ledger.
// Amounts are signed: positive for commission rows (gross booking value),
// negative for payouts and refunds. Entries are immutable once created.
type Transaction struct {
	ID         int64
	Reference  string          // внешний uuid, возвращается вызывающей стороне
	Type       TransactionType
	BookingID  *int64          // nil for payouts
	VendorID   int64
	CustomerID *int64          // nil for payouts

	Amount           float64
	CommissionAmount *float64

	Description string
	Status      TransactionStatus

	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// VendorBalance holds the denormalized earnings counters of a vendor.
// The money ledger is the source of truth; these counters are maintained
// transactionally alongside it and can be rebuilt by replay.
type VendorBalance struct {
	VendorID       int64
	TotalEarnings  float64
	PendingPayouts float64
	UpdatedAt      time.Time
}

// VendorEarningsSummary is the ledger-derived earnings view of a vendor
type VendorEarningsSummary struct {
	TotalEarnings   float64
	TotalPayouts    float64
	PendingEarnings float64
	Transactions    []*Transaction
}

// PlatformRevenueSummary is the ledger-derived commission view of the platform
type PlatformRevenueSummary struct {
	TotalCommissions        float64
	TotalBookings           int
	AvgCommissionPerBooking float64
	Transactions            []*Transaction
}

package domain

import "time"

// LoyaltyTransactionType represents the kind of a loyalty ledger entry
type LoyaltyTransactionType string

const (
	LoyaltyEarned   LoyaltyTransactionType = "earned"
	LoyaltyRedeemed LoyaltyTransactionType = "redeemed"
	LoyaltyExpired  LoyaltyTransactionType = "expired"
)

// LoyaltyTransaction is a single entry of the append-only loyalty ledger.
// Points are signed: positive for earned, negative for redeemed/expired.
// Entries are immutable once created; balances are a projection of the ledger.
type LoyaltyTransaction struct {
	ID          int64
	Reference   string // внешний uuid для отображения в истории
	CustomerID  int64
	Type        LoyaltyTransactionType
	Points      int
	BookingID   *int64
	Description string

	// ExpiresAt is set only for earned entries
	ExpiresAt *time.Time

	// ExpiryProcessed marks earned entries already offset by the expiry sweep,
	// keeping the sweep idempotent per entry
	ExpiryProcessed bool

	CreatedAt time.Time
}

// IsExpiredAt returns true for an earned entry whose points have expired by now
func (t *LoyaltyTransaction) IsExpiredAt(now time.Time) bool {
	return t.Type == LoyaltyEarned && t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}

// LoyaltySummary aggregates a customer's ledger history
type LoyaltySummary struct {
	TotalEarned     int
	TotalRedeemed   int
	TotalExpired    int
	AvailablePoints int
	RedemptionValue float64
}

// LoyaltyAnalyticsSummary is the ledger-derived platform-wide view of the
// loyalty program for a period
type LoyaltyAnalyticsSummary struct {
	TotalPointsEarned   int
	TotalPointsRedeemed int
	TotalPointsExpired  int
	ActiveCustomers     int
	RedemptionRate      float64 // процент списанных баллов от начисленных
	RedemptionValue     float64
	Transactions        []*LoyaltyTransaction
}

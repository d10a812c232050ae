package get_loyalty_summary

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type LoyaltyTransactionResponse struct {
	ID          int64   `json:"id"`
	Reference   string  `json:"reference"`
	Type        string  `json:"type"`
	Points      int     `json:"points"`
	BookingID   *int64  `json:"bookingId,omitempty"`
	Description string  `json:"description"`
	ExpiresAt   *string `json:"expiresAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

type LoyaltySummaryResponse struct {
	TotalEarned     int                           `json:"totalEarned"`
	TotalRedeemed   int                           `json:"totalRedeemed"`
	TotalExpired    int                           `json:"totalExpired"`
	AvailablePoints int                           `json:"availablePoints"`
	RedemptionValue float64                       `json:"redemptionValue"`
	Transactions    []*LoyaltyTransactionResponse `json:"transactions"`
}

func FromDomain(summary *domain.LoyaltySummary, transactions []*domain.LoyaltyTransaction) *LoyaltySummaryResponse {
	resp := &LoyaltySummaryResponse{
		TotalEarned:     summary.TotalEarned,
		TotalRedeemed:   summary.TotalRedeemed,
		TotalExpired:    summary.TotalExpired,
		AvailablePoints: summary.AvailablePoints,
		RedemptionValue: summary.RedemptionValue,
		Transactions:    make([]*LoyaltyTransactionResponse, 0, len(transactions)),
	}

	for _, tx := range transactions {
		item := &LoyaltyTransactionResponse{
			ID:          tx.ID,
			Reference:   tx.Reference,
			Type:        string(tx.Type),
			Points:      tx.Points,
			BookingID:   tx.BookingID,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		}
		if tx.ExpiresAt != nil {
			expiresAt := tx.ExpiresAt.Format(time.RFC3339)
			item.ExpiresAt = &expiresAt
		}
		resp.Transactions = append(resp.Transactions, item)
	}

	return resp
}

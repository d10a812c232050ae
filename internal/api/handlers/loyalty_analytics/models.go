package loyalty_analytics

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type TransactionResponse struct {
	ID          int64  `json:"id"`
	Reference   string `json:"reference"`
	CustomerID  int64  `json:"customerId"`
	Type        string `json:"type"`
	Points      int    `json:"points"`
	BookingID   *int64 `json:"bookingId,omitempty"`
	Description string `json:"description"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type AnalyticsResponse struct {
	TotalPointsEarned   int                    `json:"totalPointsEarned"`
	TotalPointsRedeemed int                    `json:"totalPointsRedeemed"`
	TotalPointsExpired  int                    `json:"totalPointsExpired"`
	ActiveCustomers     int                    `json:"activeCustomers"`
	RedemptionRate      float64                `json:"redemptionRate"`
	RedemptionValue     float64                `json:"redemptionValue"`
	Transactions        []*TransactionResponse `json:"transactions"`
}

func FromDomain(summary *domain.LoyaltyAnalyticsSummary) *AnalyticsResponse {
	resp := &AnalyticsResponse{
		TotalPointsEarned:   summary.TotalPointsEarned,
		TotalPointsRedeemed: summary.TotalPointsRedeemed,
		TotalPointsExpired:  summary.TotalPointsExpired,
		ActiveCustomers:     summary.ActiveCustomers,
		RedemptionRate:      summary.RedemptionRate,
		RedemptionValue:     summary.RedemptionValue,
		Transactions:        make([]*TransactionResponse, 0, len(summary.Transactions)),
	}

	for _, tx := range summary.Transactions {
		dto := &TransactionResponse{
			ID:          tx.ID,
			Reference:   tx.Reference,
			CustomerID:  tx.CustomerID,
			Type:        string(tx.Type),
			Points:      tx.Points,
			BookingID:   tx.BookingID,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		}
		if tx.ExpiresAt != nil {
			dto.ExpiresAt = tx.ExpiresAt.Format(time.RFC3339)
		}
		resp.Transactions = append(resp.Transactions, dto)
	}

	return resp
}

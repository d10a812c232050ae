package platform_revenue

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type CommissionResponse struct {
	ID               int64    `json:"id"`
	Reference        string   `json:"reference"`
	BookingID        *int64   `json:"bookingId,omitempty"`
	VendorID         int64    `json:"vendorId"`
	Amount           float64  `json:"amount"`
	CommissionAmount *float64 `json:"commissionAmount,omitempty"`
	Description      string   `json:"description"`
	CreatedAt        string   `json:"createdAt"`
}

type RevenueResponse struct {
	TotalCommissions        float64               `json:"totalCommissions"`
	TotalBookings           int                   `json:"totalBookings"`
	AvgCommissionPerBooking float64               `json:"avgCommissionPerBooking"`
	Commissions             []*CommissionResponse `json:"commissions"`
}

func FromDomain(summary *domain.PlatformRevenueSummary) *RevenueResponse {
	resp := &RevenueResponse{
		TotalCommissions:        summary.TotalCommissions,
		TotalBookings:           summary.TotalBookings,
		AvgCommissionPerBooking: summary.AvgCommissionPerBooking,
		Commissions:             make([]*CommissionResponse, 0, len(summary.Transactions)),
	}

	for _, tx := range summary.Transactions {
		resp.Commissions = append(resp.Commissions, &CommissionResponse{
			ID:               tx.ID,
			Reference:        tx.Reference,
			BookingID:        tx.BookingID,
			VendorID:         tx.VendorID,
			Amount:           tx.Amount,
			CommissionAmount: tx.CommissionAmount,
			Description:      tx.Description,
			CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}

package vendor_earnings

import (
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type TransactionResponse struct {
	ID               int64    `json:"id"`
	Reference        string   `json:"reference"`
	Type             string   `json:"type"`
	BookingID        *int64   `json:"bookingId,omitempty"`
	Amount           float64  `json:"amount"`
	CommissionAmount *float64 `json:"commissionAmount,omitempty"`
	Description      string   `json:"description"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"createdAt"`
	ProcessedAt      *string  `json:"processedAt,omitempty"`
}

type EarningsResponse struct {
	VendorID        int64                  `json:"vendorId"`
	TotalEarnings   float64                `json:"totalEarnings"`
	TotalPayouts    float64                `json:"totalPayouts"`
	PendingEarnings float64                `json:"pendingEarnings"`
	Transactions    []*TransactionResponse `json:"transactions"`
}

func FromDomain(vendorID int64, summary *domain.VendorEarningsSummary) *EarningsResponse {
	resp := &EarningsResponse{
		VendorID:        vendorID,
		TotalEarnings:   summary.TotalEarnings,
		TotalPayouts:    summary.TotalPayouts,
		PendingEarnings: summary.PendingEarnings,
		Transactions:    make([]*TransactionResponse, 0, len(summary.Transactions)),
	}

	for _, tx := range summary.Transactions {
		resp.Transactions = append(resp.Transactions, fromDomainTransaction(tx))
	}

	return resp
}

func fromDomainTransaction(tx *domain.Transaction) *TransactionResponse {
	item := &TransactionResponse{
		ID:               tx.ID,
		Reference:        tx.Reference,
		Type:             string(tx.Type),
		BookingID:        tx.BookingID,
		Amount:           tx.Amount,
		CommissionAmount: tx.CommissionAmount,
		Description:      tx.Description,
		Status:           string(tx.Status),
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.ProcessedAt != nil {
		processedAt := tx.ProcessedAt.Format(time.RFC3339)
		item.ProcessedAt = &processedAt
	}
	return item
}

package process_payout

type PayoutRequest struct {
	Amount float64 `json:"amount"`
}

type PayoutResponse struct {
	VendorID       int64   `json:"vendorId"`
	Amount         float64 `json:"amount"`
	TransactionRef string  `json:"transactionRef"`
}

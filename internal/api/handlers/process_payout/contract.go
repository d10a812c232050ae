package process_payout

import (
	"context"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/integrations/vendorservice"
)

type BillingService interface {
	Payout(ctx context.Context, vendorID int64, amount float64) (string, error)
}

type VendorServiceClient interface {
	GetVendor(ctx context.Context, vendorID int64) (*vendorservice.Vendor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package platform_revenue

import (
	"context"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type BillingService interface {
	PlatformRevenue(ctx context.Context, startDate, endDate *time.Time) (*domain.PlatformRevenueSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package loyalty_analytics

import (
	"context"
	"time"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type LoyaltyService interface {
	PlatformAnalytics(ctx context.Context, startDate, endDate *time.Time) (*domain.LoyaltyAnalyticsSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_loyalty_summary

import (
	"context"

	"github.com/AryanRathore04/Builder-mystic-forge/internal/domain"
)

type LoyaltyService interface {
	History(ctx context.Context, customerID int64) ([]*domain.LoyaltyTransaction, *domain.LoyaltySummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

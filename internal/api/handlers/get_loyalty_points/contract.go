package get_loyalty_points

import "context"

type LoyaltyService interface {
	AvailablePoints(ctx context.Context, customerID int64) (int, error)
	RedemptionValue(points int) float64
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

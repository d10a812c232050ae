package expire_points

import (
	"context"

	expirepoints "github.com/AryanRathore04/Builder-mystic-forge/internal/usecase/expire_points"
)

type ExpirePointsUseCase interface {
	Execute(ctx context.Context) (*expirepoints.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

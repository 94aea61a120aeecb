package handlers

import (
	"context"

	"github.com/polkiloo/pointbank/internal/domain/model"
)

// PointFacade provides the balance operations exposed via HTTP.
type PointFacade interface {
	Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error)
	Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error)
	Balance(ctx context.Context, userID int64) (*model.UserPoint, error)
	History(ctx context.Context, userID int64) ([]model.PointHistory, error)
}

// HealthChecker reports storage connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

package app

import (
	"context"

	"github.com/polkiloo/pointbank/internal/domain/model"
	"github.com/polkiloo/pointbank/internal/usecase"
)

// PointFacade is the single entry point the HTTP layer and the background
// auditor talk to.
type PointFacade struct {
	points *usecase.PointUseCase
	audits *usecase.AuditUseCase
}

func NewPointFacade(points *usecase.PointUseCase, audits *usecase.AuditUseCase) *PointFacade {
	return &PointFacade{points: points, audits: audits}
}

func (f *PointFacade) Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	return f.points.Charge(ctx, userID, amount)
}

func (f *PointFacade) Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	return f.points.Use(ctx, userID, amount)
}

func (f *PointFacade) Balance(ctx context.Context, userID int64) (*model.UserPoint, error) {
	return f.points.Balance(ctx, userID)
}

func (f *PointFacade) History(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	return f.points.History(ctx, userID)
}

func (f *PointFacade) UsersForAudit(ctx context.Context, limit int) ([]int64, error) {
	return f.audits.Users(ctx, limit)
}

func (f *PointFacade) AuditBalance(ctx context.Context, userID int64) (*model.AuditSnapshot, error) {
	return f.audits.Snapshot(ctx, userID)
}

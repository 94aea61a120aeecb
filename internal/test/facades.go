package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/pointbank/internal/domain/model"
)

// PointFacadeStub provides controllable behaviour for point endpoints.
type PointFacadeStub struct {
	ChargeFn  func(context.Context, int64, int64) (*model.UserPoint, error)
	UseFn     func(context.Context, int64, int64) (*model.UserPoint, error)
	BalanceFn func(context.Context, int64) (*model.UserPoint, error)
	HistoryFn func(context.Context, int64) ([]model.PointHistory, error)
}

// Charge delegates to the override or reports the charged amount as balance.
func (s PointFacadeStub) Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, userID, amount)
	}
	return &model.UserPoint{UserID: userID, Point: amount, UpdatedAt: time.Unix(0, 0)}, nil
}

// Use delegates to the override or reports a zero balance.
func (s PointFacadeStub) Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if s.UseFn != nil {
		return s.UseFn(ctx, userID, amount)
	}
	return &model.UserPoint{UserID: userID, UpdatedAt: time.Unix(0, 0)}, nil
}

// Balance delegates to the override or returns a fixed balance.
func (s PointFacadeStub) Balance(ctx context.Context, userID int64) (*model.UserPoint, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.UserPoint{UserID: userID, Point: 10, UpdatedAt: time.Unix(0, 0)}, nil
}

// History delegates to the override or returns one charge record.
func (s PointFacadeStub) History(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return []model.PointHistory{{ID: 1, UserID: userID, Amount: 10, Kind: model.TransactionCharge, CreatedAt: time.Unix(0, 0)}}, nil
}

// HealthCheckerStub reports configurable storage health.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}

// AuditFacadeStub mimics worker interactions with the audit facade.
type AuditFacadeStub struct {
	UsersFn    func(context.Context, int) ([]int64, error)
	SnapshotFn func(context.Context, int64) (*model.AuditSnapshot, error)

	// Batches is consumed one element per poll when UsersFn is unset.
	Batches [][]int64

	mu        sync.Mutex
	pollCount int
	Audited   []int64
}

// UsersForAudit returns the next configured batch, or delegates to the override.
func (s *AuditFacadeStub) UsersForAudit(ctx context.Context, limit int) ([]int64, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pollCount >= len(s.Batches) {
		return nil, nil
	}
	batch := s.Batches[s.pollCount]
	s.pollCount++
	return batch, nil
}

// AuditBalance records the audited user and delegates to the override.
func (s *AuditFacadeStub) AuditBalance(ctx context.Context, userID int64) (*model.AuditSnapshot, error) {
	s.mu.Lock()
	s.Audited = append(s.Audited, userID)
	s.mu.Unlock()
	if s.SnapshotFn != nil {
		return s.SnapshotFn(ctx, userID)
	}
	return &model.AuditSnapshot{UserID: userID}, nil
}

// AuditedCount reports how many audits completed so far.
func (s *AuditFacadeStub) AuditedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Audited)
}

package usecase

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/pointbank/internal/domain/errors"
	"github.com/polkiloo/pointbank/internal/domain/model"
	"github.com/polkiloo/pointbank/internal/domain/repository"
	"github.com/polkiloo/pointbank/internal/pkg/keylock"
)

// PointUseCase serializes balance mutations per user and enforces the
// balance invariants. A mutation holds the user's lock for its whole
// read-validate-write-append sequence; operations on different users never
// contend. Reads bypass the lock entirely.
type PointUseCase struct {
	balances repository.BalanceRepository
	history  repository.HistoryRepository
	locks    *keylock.Registry
	now      func() time.Time
}

// NewPointUseCase constructs PointUseCase around the given lock registry.
func NewPointUseCase(b repository.BalanceRepository, h repository.HistoryRepository, locks *keylock.Registry) *PointUseCase {
	return &PointUseCase{balances: b, history: h, locks: locks, now: time.Now}
}

// Charge increases the user's balance by amount. Fails without side effects
// when amount is not positive or the result would exceed model.MaxBalance.
func (u *PointUseCase) Charge(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidChargeAmount
	}

	mu := u.locks.Get(userID)
	mu.Lock()
	defer mu.Unlock()

	current, err := u.balances.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Compare against the remaining headroom instead of summing so that
	// amounts near MaxInt64 cannot wrap past the ceiling check.
	if amount > model.MaxBalance-current.Point {
		return nil, domainErrors.ErrBalanceCeilingExceeded
	}

	updated, err := u.balances.Upsert(ctx, userID, current.Point+amount)
	if err != nil {
		return nil, err
	}
	if _, err := u.history.Append(ctx, userID, amount, model.TransactionCharge, u.now()); err != nil {
		return nil, err
	}
	return updated, nil
}

// Use decreases the user's balance by amount. Fails without side effects
// when amount is not positive or exceeds the current balance.
func (u *PointUseCase) Use(ctx context.Context, userID, amount int64) (*model.UserPoint, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidUseAmount
	}

	mu := u.locks.Get(userID)
	mu.Lock()
	defer mu.Unlock()

	current, err := u.balances.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if current.Point < amount {
		return nil, domainErrors.ErrInsufficientBalance
	}

	updated, err := u.balances.Upsert(ctx, userID, current.Point-amount)
	if err != nil {
		return nil, err
	}
	if _, err := u.history.Append(ctx, userID, amount, model.TransactionUse, u.now()); err != nil {
		return nil, err
	}
	return updated, nil
}

// Balance returns the current balance, zero-valued for unknown users.
func (u *PointUseCase) Balance(ctx context.Context, userID int64) (*model.UserPoint, error) {
	return u.balances.Get(ctx, userID)
}

// History returns the user's mutation records in insertion order.
func (u *PointUseCase) History(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	return u.history.ListByUser(ctx, userID)
}

package repository

import (
	"context"

	"github.com/polkiloo/pointbank/internal/domain/model"
)

// BalanceRepository manages the single live balance record per user.
type BalanceRepository interface {
	// Get returns the current balance, or a zero-balance record when the
	// user has never been written.
	Get(ctx context.Context, userID int64) (*model.UserPoint, error)
	// Upsert replaces the balance and returns the authoritative stored record.
	Upsert(ctx context.Context, userID, point int64) (*model.UserPoint, error)
}

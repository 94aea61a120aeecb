package repository

import (
	"context"
	"time"

	"github.com/polkiloo/pointbank/internal/domain/model"
)

// HistoryRepository provides access to the append-only mutation audit trail.
type HistoryRepository interface {
	Append(ctx context.Context, userID, amount int64, kind model.TransactionKind, at time.Time) (*model.PointHistory, error)
	// ListByUser returns records in insertion order, empty when none exist.
	ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error)
}

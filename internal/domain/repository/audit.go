package repository

import (
	"context"

	"github.com/polkiloo/pointbank/internal/domain/model"
)

// AuditRepository exposes read-only consistency queries over the ledger.
type AuditRepository interface {
	// SelectUsersForAudit returns up to limit user identifiers, most
	// recently mutated first.
	SelectUsersForAudit(ctx context.Context, limit int) ([]int64, error)
	Snapshot(ctx context.Context, userID int64) (*model.AuditSnapshot, error)
}

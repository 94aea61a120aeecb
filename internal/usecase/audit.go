package usecase

import (
	"context"

	"github.com/polkiloo/pointbank/internal/domain/model"
	"github.com/polkiloo/pointbank/internal/domain/repository"
)

// AuditUseCase exposes read-only consistency checks over the ledger.
type AuditUseCase struct {
	audits repository.AuditRepository
}

// NewAuditUseCase constructs AuditUseCase.
func NewAuditUseCase(a repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{audits: a}
}

// Users returns up to limit user identifiers worth auditing.
func (u *AuditUseCase) Users(ctx context.Context, limit int) ([]int64, error) {
	return u.audits.SelectUsersForAudit(ctx, limit)
}

// Snapshot compares the stored balance of a user against its replayed history.
func (u *AuditUseCase) Snapshot(ctx context.Context, userID int64) (*model.AuditSnapshot, error) {
	return u.audits.Snapshot(ctx, userID)
}

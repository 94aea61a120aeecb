package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/pointbank/internal/domain/errors"
	"github.com/polkiloo/pointbank/internal/domain/model"
)

// MemoryLedger is a thread-safe in-memory implementation of the balance and
// history repositories. Each call is internally synchronized, mirroring the
// contract of the real storage collaborator, but no coordination exists
// between a read and a subsequent write; callers that need a consistent
// read-modify-write must serialize externally.
type MemoryLedger struct {
	mu      sync.Mutex
	points  map[int64]model.UserPoint
	history map[int64][]model.PointHistory
	recency []int64
	nextID  int64
}

// NewMemoryLedger constructs an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		points:  make(map[int64]model.UserPoint),
		history: make(map[int64][]model.PointHistory),
		nextID:  1,
	}
}

// Get returns the stored balance or a zero-balance default.
func (l *MemoryLedger) Get(ctx context.Context, userID int64) (*model.UserPoint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.points[userID]; ok {
		copied := p
		return &copied, nil
	}
	return &model.UserPoint{UserID: userID}, nil
}

// Upsert replaces the balance and returns the stored record.
func (l *MemoryLedger) Upsert(ctx context.Context, userID, point int64) (*model.UserPoint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := model.UserPoint{UserID: userID, Point: point, UpdatedAt: time.Now()}
	l.points[userID] = p
	l.touch(userID)
	copied := p
	return &copied, nil
}

// touch moves userID to the front of the recency list.
func (l *MemoryLedger) touch(userID int64) {
	for i, id := range l.recency {
		if id == userID {
			l.recency = append(l.recency[:i], l.recency[i+1:]...)
			break
		}
	}
	l.recency = append([]int64{userID}, l.recency...)
}

// Append adds an immutable history record with a storage-assigned identifier.
func (l *MemoryLedger) Append(ctx context.Context, userID, amount int64, kind model.TransactionKind, at time.Time) (*model.PointHistory, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := model.PointHistory{ID: l.nextID, UserID: userID, Amount: amount, Kind: kind, CreatedAt: at}
	l.nextID++
	l.history[userID] = append(l.history[userID], h)
	copied := h
	return &copied, nil
}

// ListByUser returns history records in insertion order.
func (l *MemoryLedger) ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	records := l.history[userID]
	out := make([]model.PointHistory, len(records))
	copy(out, records)
	return out, nil
}

// SelectUsersForAudit returns up to limit user identifiers, most recently
// mutated first.
func (l *MemoryLedger) SelectUsersForAudit(ctx context.Context, limit int) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit > len(l.recency) {
		limit = len(l.recency)
	}
	ids := make([]int64, limit)
	copy(ids, l.recency[:limit])
	return ids, nil
}

// Snapshot replays the user's history against the stored balance.
func (l *MemoryLedger) Snapshot(ctx context.Context, userID int64) (*model.AuditSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.points[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	var replayed int64
	for _, h := range l.history[userID] {
		replayed += h.Signed()
	}
	return &model.AuditSnapshot{UserID: userID, Stored: p.Point, Replayed: replayed}, nil
}

// BalanceRepositoryStub lets tests control balance repository behaviour.
type BalanceRepositoryStub struct {
	GetFn    func(context.Context, int64) (*model.UserPoint, error)
	UpsertFn func(context.Context, int64, int64) (*model.UserPoint, error)
}

// Get delegates to the override or returns a zero-balance record.
func (s *BalanceRepositoryStub) Get(ctx context.Context, userID int64) (*model.UserPoint, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	return &model.UserPoint{UserID: userID}, nil
}

// Upsert delegates to the override or echoes the requested state.
func (s *BalanceRepositoryStub) Upsert(ctx context.Context, userID, point int64) (*model.UserPoint, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, userID, point)
	}
	return &model.UserPoint{UserID: userID, Point: point, UpdatedAt: time.Unix(0, 0)}, nil
}

// HistoryRepositoryStub lets tests control history repository behaviour.
type HistoryRepositoryStub struct {
	AppendFn     func(context.Context, int64, int64, model.TransactionKind, time.Time) (*model.PointHistory, error)
	ListByUserFn func(context.Context, int64) ([]model.PointHistory, error)

	mu       sync.Mutex
	Appended []model.PointHistory
}

// Append records the invocation and delegates to the override when set.
func (s *HistoryRepositoryStub) Append(ctx context.Context, userID, amount int64, kind model.TransactionKind, at time.Time) (*model.PointHistory, error) {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, userID, amount, kind, at)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := model.PointHistory{ID: int64(len(s.Appended) + 1), UserID: userID, Amount: amount, Kind: kind, CreatedAt: at}
	s.Appended = append(s.Appended, h)
	copied := h
	return &copied, nil
}

// ListByUser returns appended records or delegates to the override.
func (s *HistoryRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.PointHistory, 0, len(s.Appended))
	for _, h := range s.Appended {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

// AuditRepositoryStub lets tests control audit queries.
type AuditRepositoryStub struct {
	UsersFn    func(context.Context, int) ([]int64, error)
	SnapshotFn func(context.Context, int64) (*model.AuditSnapshot, error)
}

// SelectUsersForAudit delegates to the override or returns no users.
func (s *AuditRepositoryStub) SelectUsersForAudit(ctx context.Context, limit int) ([]int64, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, limit)
	}
	return nil, nil
}

// Snapshot delegates to the override or reports a consistent empty snapshot.
func (s *AuditRepositoryStub) Snapshot(ctx context.Context, userID int64) (*model.AuditSnapshot, error) {
	if s.SnapshotFn != nil {
		return s.SnapshotFn(ctx, userID)
	}
	return &model.AuditSnapshot{UserID: userID}, nil
}

package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/pointbank/internal/domain/errors"
	"github.com/polkiloo/pointbank/internal/domain/model"
)

// AuditFacade exposes the subset of application functionality required by the auditor.
type AuditFacade interface {
	UsersForAudit(ctx context.Context, limit int) ([]int64, error)
	AuditBalance(ctx context.Context, userID int64) (*model.AuditSnapshot, error)
}

// Auditor periodically replays user histories against stored balances and
// reports drift. It never mutates ledger state.
type Auditor struct {
	facade    AuditFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan int64
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAuditor constructs the audit worker pool.
func NewAuditor(facade AuditFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *Auditor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Auditor{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
	}
}

// Start launches background auditing.
func (a *Auditor) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	// dispatch closes the channel on shutdown, so each run gets a fresh one.
	a.jobs = make(chan int64, a.batchSize)

	for i := 0; i < a.workers; i++ {
		a.wg.Add(1)
		go a.worker(runCtx)
	}

	a.wg.Add(1)
	go a.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (a *Auditor) Stop() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()

	a.wg.Wait()
}

func (a *Auditor) dispatch(ctx context.Context) {
	defer a.wg.Done()
	defer close(a.jobs)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.fetchAndDispatch(ctx)
		}
	}
}

func (a *Auditor) fetchAndDispatch(ctx context.Context) {
	users, err := a.facade.UsersForAudit(ctx, a.batchSize)
	if err != nil {
		a.logger.Error("fetch users for audit failed", slog.String("error", err.Error()))
		return
	}
	for _, userID := range users {
		select {
		case <-ctx.Done():
			return
		case a.jobs <- userID:
		}
	}
}

func (a *Auditor) worker(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case userID, ok := <-a.jobs:
			if !ok {
				return
			}
			a.handleUser(ctx, userID)
		}
	}
}

func (a *Auditor) handleUser(ctx context.Context, userID int64) {
	snap, err := a.facade.AuditBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return
		}
		a.logger.Error("audit snapshot failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return
	}

	if !snap.Consistent() {
		a.logger.Error("balance drift detected",
			slog.Int64("user_id", userID),
			slog.Int64("stored", snap.Stored),
			slog.Int64("replayed", snap.Replayed),
		)
	}
}

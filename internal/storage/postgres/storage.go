package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/pointbank/internal/domain/errors"
	"github.com/polkiloo/pointbank/internal/domain/model"
	"github.com/polkiloo/pointbank/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage relies on. Tests satisfy
// it with a pgxmock pool.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type balanceRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

type auditRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Balances() repository.BalanceRepository {
	return &balanceRepository{storage: s}
}

func (s *Storage) History() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

func (s *Storage) Audits() repository.AuditRepository {
	return &auditRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS points (
            user_id BIGINT PRIMARY KEY,
            point BIGINT NOT NULL DEFAULT 0 CHECK (point >= 0),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS point_history (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            amount BIGINT NOT NULL,
            kind TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_point_history_user ON point_history(user_id, id)`,
	}

	return s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
		}
		return nil
	})
}

// --- BalanceRepository implementation ---

func (r *balanceRepository) Get(ctx context.Context, userID int64) (*model.UserPoint, error) {
	const query = `SELECT user_id, point, updated_at FROM points WHERE user_id=$1`
	var p model.UserPoint
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.Point, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.UserPoint{UserID: userID}, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *balanceRepository) Upsert(ctx context.Context, userID, point int64) (*model.UserPoint, error) {
	const query = `INSERT INTO points AS p (user_id, point, updated_at)
                   VALUES ($1, $2, NOW())
                   ON CONFLICT (user_id) DO UPDATE SET point=EXCLUDED.point, updated_at=NOW()
                   RETURNING user_id, point, updated_at`
	var p model.UserPoint
	err := r.storage.pool.QueryRow(ctx, query, userID, point).Scan(&p.UserID, &p.Point, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- HistoryRepository implementation ---

func (r *historyRepository) Append(ctx context.Context, userID, amount int64, kind model.TransactionKind, at time.Time) (*model.PointHistory, error) {
	const query = `INSERT INTO point_history (user_id, amount, kind, created_at)
                   VALUES ($1, $2, $3, $4) RETURNING id`
	h := model.PointHistory{UserID: userID, Amount: amount, Kind: kind, CreatedAt: at}
	if err := r.storage.pool.QueryRow(ctx, query, userID, amount, string(kind), at).Scan(&h.ID); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	const query = `SELECT id, user_id, amount, kind, created_at
                   FROM point_history WHERE user_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.PointHistory, 0)
	for rows.Next() {
		var h model.PointHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.Amount, &h.Kind, &h.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AuditRepository implementation ---

func (r *auditRepository) SelectUsersForAudit(ctx context.Context, limit int) ([]int64, error) {
	const query = `SELECT user_id FROM points ORDER BY updated_at DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *auditRepository) Snapshot(ctx context.Context, userID int64) (*model.AuditSnapshot, error) {
	const query = `SELECT p.point,
                          COALESCE(SUM(CASE h.kind WHEN 'CHARGE' THEN h.amount WHEN 'USE' THEN -h.amount ELSE 0 END), 0)
                   FROM points p
                   LEFT JOIN point_history h ON h.user_id = p.user_id
                   WHERE p.user_id=$1
                   GROUP BY p.point`
	snap := model.AuditSnapshot{UserID: userID}
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&snap.Stored, &snap.Replayed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &snap, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msc-labs/evaluate-backend/internal/model"
)

// AdminLogRepository handles admin audit log persistence.
type AdminLogRepository struct {
	pool *pgxpool.Pool
}

// NewAdminLogRepository creates a new AdminLogRepository.
func NewAdminLogRepository(pool *pgxpool.Pool) *AdminLogRepository {
	return &AdminLogRepository{pool: pool}
}

// InsertBatch writes a batch of log entries in one statement via UNNEST.
func (r *AdminLogRepository) InsertBatch(ctx context.Context, entries []model.AdminLog) error {
	if len(entries) == 0 {
		return nil
	}

	n := len(entries)
	adminIDs := make([]uuid.UUID, 0, n)
	actions := make([]string, 0, n)
	targets := make([]string, 0, n)
	details := make([]string, 0, n)
	createdAts := make([]time.Time, 0, n)

	for _, e := range entries {
		adminIDs = append(adminIDs, e.AdminID)
		actions = append(actions, e.Action)
		targets = append(targets, e.TargetID)
		details = append(details, e.Detail)
		createdAts = append(createdAts, e.CreatedAt)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO admin_logs (admin_id, action, target_id, detail, created_at)
		 SELECT * FROM UNNEST($1::uuid[], $2::text[], $3::text[], $4::text[], $5::timestamptz[])`,
		adminIDs, actions, targets, details, createdAts)
	return err
}

// Insert writes a single log entry. Fallback path when a batch write fails.
func (r *AdminLogRepository) Insert(ctx context.Context, e *model.AdminLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO admin_logs (admin_id, action, target_id, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.AdminID, e.Action, e.TargetID, e.Detail, e.CreatedAt)
	return err
}

// ListRecent retrieves the most recent log entries, newest first.
func (r *AdminLogRepository) ListRecent(ctx context.Context, limit int) ([]model.AdminLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, admin_id, action, target_id, detail, created_at
		 FROM admin_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.AdminLog
	for rows.Next() {
		var e model.AdminLog
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Action, &e.TargetID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}

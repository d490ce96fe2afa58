package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/config"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// AuditService records administrative actions. Entries are queued to Redis
// and drained into PostgreSQL by the admin log worker, keeping the write off
// the request path.
type AuditService struct {
	logs *repository.AdminLogRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(logs *repository.AdminLogRepository, rdb *redis.Client, log zerolog.Logger) *AuditService {
	return &AuditService{
		logs: logs,
		rdb:  rdb,
		log:  log.With().Str("component", "audit_service").Logger(),
	}
}

// Record enqueues one audit entry. Queue failures are logged, never surfaced:
// an audit hiccup must not fail the admin action itself.
func (s *AuditService) Record(ctx context.Context, adminID uuid.UUID, action, targetID, detail string) {
	entry := model.AdminLog{
		AdminID:   adminID,
		Action:    action,
		TargetID:  targetID,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		s.log.Error().Err(err).Msg("Marshal audit entry failed")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.AdminLogQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("Enqueue audit entry failed")
	}
}

// ListRecent retrieves the most recent audit entries, newest first.
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]model.AdminLog, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	logs, err := s.logs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list admin logs: %w", err)
	}
	if logs == nil {
		logs = []model.AdminLog{}
	}
	return logs, nil
}

package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/msc-labs/evaluate-backend/internal/config"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	LogBatchSize    = 50
	LogBatchTimeout = 2 * time.Second
	LogPollTimeout  = 1 * time.Second
)

// AdminLogWorker drains queued audit entries from Redis into PostgreSQL in
// batches, so audit writes never block admin request handling.
type AdminLogWorker struct {
	logs *repository.AdminLogRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewAdminLogWorker(logs *repository.AdminLogRepository, rdb *redis.Client, log zerolog.Logger) *AdminLogWorker {
	return &AdminLogWorker{
		logs: logs,
		rdb:  rdb,
		log:  log.With().Str("component", "admin_log_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *AdminLogWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AdminLogWorker started")

	batch := make([]model.AdminLog, 0, LogBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= LogBatchSize || time.Since(lastFlush) >= LogBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, LogPollTimeout, config.WorkerKey.AdminLogQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var entry model.AdminLog
			if err := json.Unmarshal([]byte(item[1]), &entry); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, entry)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper with single-row fallback and requeue
// ----------------------------------------------------------------

func (w *AdminLogWorker) flushSafe(ctx context.Context, batch []model.AdminLog) {
	if len(batch) == 0 {
		return
	}

	if err := w.logs.InsertBatch(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk log insert failed, using fallback")

		for i := range batch {
			if err := w.logs.Insert(ctx, &batch[i]); err != nil {
				w.log.Error().Err(err).Msg("single log insert failed — requeueing")
				raw, _ := json.Marshal(batch[i])
				w.rdb.RPush(ctx, config.WorkerKey.AdminLogQueue, raw)
			}
		}
	}
}

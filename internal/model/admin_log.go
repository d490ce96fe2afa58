package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminLog records an administrative action (template or result deletion).
// Entries are queued to Redis and persisted asynchronously by the log worker.
type AdminLog struct {
	ID        int64     `json:"id"`
	AdminID   uuid.UUID `json:"admin_id"`
	Action    string    `json:"action"`
	TargetID  string    `json:"target_id"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package repository

import (
	"time"

	"github.com/google/uuid"
)

// UsageLog is one recorded API request, the raw material for the admin
// usage-analytics views.
type UsageLog struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Endpoint   string    `json:"endpoint"`
	Method     string    `json:"method"`
	StatusCode int       `json:"status_code"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// UsageStat is an aggregated usage bucket, keyed by day or endpoint.
type UsageStat struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// SearchHistory is one recorded verification lookup by a user.
type SearchHistory struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Domain    string    `json:"domain"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

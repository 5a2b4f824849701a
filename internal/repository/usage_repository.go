package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// usageRepository implements UsageRepository
type usageRepository struct {
	db dbExecutor
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db dbExecutor) UsageRepository {
	return &usageRepository{db: db}
}

// Record inserts one API usage log row
func (r *usageRepository) Record(log *UsageLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO api_usage_logs (id, user_id, endpoint, method, status_code, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(query,
		log.ID, log.UserID, log.Endpoint, log.Method, log.StatusCode,
		log.DurationMs, log.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	return nil
}

// CountsByDay aggregates request counts per calendar day in the given range
func (r *usageRepository) CountsByDay(from, to time.Time) ([]UsageStat, error) {
	query := `
		SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day, COUNT(*)
		FROM api_usage_logs
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day ASC
	`

	return r.queryStats(query, from, to)
}

// CountsByEndpoint aggregates request counts per endpoint in the given range
func (r *usageRepository) CountsByEndpoint(from, to time.Time) ([]UsageStat, error) {
	query := `
		SELECT endpoint, COUNT(*)
		FROM api_usage_logs
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY endpoint
		ORDER BY COUNT(*) DESC
	`

	return r.queryStats(query, from, to)
}

// TotalSince returns the total request count since the cutoff
func (r *usageRepository) TotalSince(t time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM api_usage_logs WHERE created_at >= $1`

	var total int
	if err := r.db.QueryRow(query, t).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}

	return total, nil
}

func (r *usageRepository) queryStats(query string, args ...interface{}) ([]UsageStat, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var s UsageStat
		if err := rows.Scan(&s.Key, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan usage stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

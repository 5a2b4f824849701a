package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// historyRepository implements HistoryRepository
type historyRepository struct {
	db dbExecutor
}

// NewHistoryRepository creates a new search history repository
func NewHistoryRepository(db dbExecutor) HistoryRepository {
	return &historyRepository{db: db}
}

// Record inserts one search history row
func (r *historyRepository) Record(entry *SearchHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO search_history (id, user_id, domain, query, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query,
		entry.ID, entry.UserID, entry.Domain, entry.Query, entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record search history: %w", err)
	}

	return nil
}

// ListByUser returns a page of a user's searches, newest first
func (r *historyRepository) ListByUser(userID uuid.UUID, limit, offset int) ([]SearchHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, user_id, domain, query, created_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	defer rows.Close()

	var entries []SearchHistory
	for rows.Next() {
		var e SearchHistory
		if err := rows.Scan(&e.ID, &e.UserID, &e.Domain, &e.Query, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search history: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CountsByDomain aggregates search counts per verification domain in the given range
func (r *historyRepository) CountsByDomain(from, to time.Time) ([]UsageStat, error) {
	query := `
		SELECT domain, COUNT(*)
		FROM search_history
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY domain
		ORDER BY COUNT(*) DESC
	`

	rows, err := r.db.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate search history: %w", err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var s UsageStat
		if err := rows.Scan(&s.Key, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan search stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

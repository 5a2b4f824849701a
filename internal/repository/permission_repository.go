package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/veriscope/veriscope-api/internal/models"
)

// permissionRepository implements PermissionRepository
type permissionRepository struct {
	db dbExecutor
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db dbExecutor) PermissionRepository {
	return &permissionRepository{db: db}
}

// GetByUser retrieves all permission rows for a user
func (r *permissionRepository) GetByUser(userID uuid.UUID) ([]models.Permission, error) {
	query := `
		SELECT id, user_id, resource, actions, updated_at
		FROM permissions WHERE user_id = $1 ORDER BY resource ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get permissions: %w", err)
	}
	defer rows.Close()

	var perms []models.Permission
	for rows.Next() {
		var p models.Permission
		var actions pq.StringArray
		if err := rows.Scan(&p.ID, &p.UserID, &p.Resource, &actions, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		p.Actions = make([]models.Action, 0, len(actions))
		for _, a := range actions {
			p.Actions = append(p.Actions, models.Action(a))
		}
		perms = append(perms, p)
	}

	return perms, rows.Err()
}

// Upsert creates or replaces the action set for a user/resource pair
func (r *permissionRepository) Upsert(perm *models.Permission) error {
	if perm.ID == uuid.Nil {
		perm.ID = uuid.New()
	}
	perm.UpdatedAt = time.Now()

	actions := make(pq.StringArray, 0, len(perm.Actions))
	for _, a := range perm.Actions {
		actions = append(actions, string(a))
	}

	query := `
		INSERT INTO permissions (id, user_id, resource, actions, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, resource)
		DO UPDATE SET actions = EXCLUDED.actions, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(query, perm.ID, perm.UserID, perm.Resource, actions, perm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert permission: %w", err)
	}

	return nil
}

// Delete removes the permission row for a user/resource pair
func (r *permissionRepository) Delete(userID uuid.UUID, resource models.Resource) error {
	query := `DELETE FROM permissions WHERE user_id = $1 AND resource = $2`

	result, err := r.db.Exec(query, userID, resource)
	if err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteByUser removes all permission rows for a user
func (r *permissionRepository) DeleteByUser(userID uuid.UUID) error {
	query := `DELETE FROM permissions WHERE user_id = $1`

	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to delete permissions: %w", err)
	}

	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a staff account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserRole represents available user roles
type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

// IsAdmin returns true if user has admin or superadmin role
func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin) || u.Role == string(RoleSuperAdmin)
}

// IsSuperAdmin returns true if user has the superadmin role
func (u *User) IsSuperAdmin() bool {
	return u.Role == string(RoleSuperAdmin)
}

// Resource is a permission resource key
type Resource string

const (
	ResourceBusiness   Resource = "business"
	ResourceIdentity   Resource = "identity"
	ResourceFSSAI      Resource = "fssai"
	ResourceCourtCases Resource = "courtcases"
	ResourceNews       Resource = "news"
	ResourceExport     Resource = "export"
	ResourceAdmin      Resource = "admin"
)

// Action is a permission action key
type Action string

const (
	ActionRead   Action = "read"
	ActionExport Action = "export"
	ActionEmail  Action = "email"
	ActionManage Action = "manage"
)

// Permission grants a set of actions on a resource to a user. Superadmins
// implicitly hold every permission; explicit rows are never created for them.
type Permission struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Resource  Resource  `json:"resource" db:"resource"`
	Actions   []Action  `json:"actions" db:"actions"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Allows reports whether the permission covers the given action.
func (p *Permission) Allows(action Action) bool {
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// ValidResource reports whether the resource key is one of the known enums.
func ValidResource(r Resource) bool {
	switch r {
	case ResourceBusiness, ResourceIdentity, ResourceFSSAI, ResourceCourtCases,
		ResourceNews, ResourceExport, ResourceAdmin:
		return true
	}
	return false
}

// ValidAction reports whether the action key is one of the known enums.
func ValidAction(a Action) bool {
	switch a {
	case ActionRead, ActionExport, ActionEmail, ActionManage:
		return true
	}
	return false
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest represents a self-service signup request. Role is always
// "user"; elevated roles are granted through the admin panel.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required,min=3"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role"`
}

// UpdateUserRequest represents a user update request
type UpdateUserRequest struct {
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
	Role     UserRole `json:"role,omitempty"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	User         User      `json:"user"`
	ExpiresAt    time.Time `json:"expires_at"`
}

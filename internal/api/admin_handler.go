package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/services"
)

// AdminHandler handles user, permission and analytics endpoints
type AdminHandler struct {
	admin services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin services.AdminService) *AdminHandler {
	return &AdminHandler{
		admin: admin,
	}
}

// CreateUser creates a new staff account
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.admin.CreateUser(&req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// ListUsers returns all staff accounts
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GetUser returns a single staff account
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.admin.GetUser(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUser applies a partial update to a staff account
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.admin.UpdateUser(id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a staff account
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.admin.DeleteUser(id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GetPermissions returns the explicit permission rows for a user
func (h *AdminHandler) GetPermissions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	perms, err := h.admin.Permissions(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"permissions": perms})
}

// SetPermissionRequest replaces the action set for a resource
type SetPermissionRequest struct {
	Resource models.Resource `json:"resource" binding:"required"`
	Actions  []models.Action `json:"actions"`
}

// SetPermission creates or replaces a user's permission on a resource
func (h *AdminHandler) SetPermission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req SetPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	perm, err := h.admin.SetPermission(id, req.Resource, req.Actions)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"permission": perm})
}

// RemovePermission deletes a user's permission on a resource
func (h *AdminHandler) RemovePermission(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	resource := models.Resource(c.Param("resource"))

	if err := h.admin.RemovePermission(id, resource); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permission removed"})
}

// Analytics returns the API usage summary for the admin dashboard.
// from and to accept YYYY-MM-DD; the default window is the last 30 days.
func (h *AdminHandler) Analytics(c *gin.Context) {
	var from, to time.Time

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		to = parsed.AddDate(0, 0, 1) // inclusive end date
	}

	analytics, err := h.admin.Analytics(from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// DashboardStats returns the chart series behind the dashboard landing page
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.admin.DashboardStats()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

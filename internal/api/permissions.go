package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriscope/veriscope-api/internal/auth"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/services"
)

// RequirePermission gates a route group on an explicit permission grant.
// Superadmins pass implicitly inside the admin service check.
func RequirePermission(admin services.AdminService, resource models.Resource, action models.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if err := admin.Authorize(userID, resource, action); err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin gates a route group on the admin or superadmin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := auth.CurrentUserRole(c)
		if role != string(models.RoleAdmin) && role != string(models.RoleSuperAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

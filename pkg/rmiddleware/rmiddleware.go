package rmiddleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PatelKrunal-11/stride/internal/authz"
	"github.com/PatelKrunal-11/stride/internal/middleware"
)

// RequirePermission gates a route on the authz policy table. The caller's
// role is the one AuthMiddleware loaded from the database for this request.
func RequirePermission(perm authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr, err := middleware.GetUserRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		role, ok := authz.ParseRole(roleStr)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unknown role: " + roleStr})
			return
		}

		if !authz.Can(role, perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Forbidden",
				"message":  "You don't have permission to access this resource",
				"required": perm,
			})
			return
		}

		c.Next()
	}
}

// RequireRole gates a route on an explicit role list, bypassing the
// permission table. Used for surfaces tied to a role rather than a
// capability (e.g. the parent portal).
func RequireRole(requiredRoles ...authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr, err := middleware.GetUserRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		role, ok := authz.ParseRole(roleStr)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unknown role: " + roleStr})
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RequireRole(authz.RoleAdmin)
}

// ParentMiddleware is a convenience middleware for the parent portal
func ParentMiddleware() gin.HandlerFunc {
	return RequireRole(authz.RoleParent)
}

// CoachOrAdminMiddleware is a convenience middleware for coach or admin access
func CoachOrAdminMiddleware() gin.HandlerFunc {
	return RequireRole(authz.RoleCoach, authz.RoleAdmin)
}

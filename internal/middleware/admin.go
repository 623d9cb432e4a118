package middleware

import (
	"net/http" // HTTP status codes

	"catalog_system/internal/authz" // Authorization policy

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireAdmin aborts with 403 when the acting user may not manage the
// catalog. Runs after CurrentUser; fine-grained per-target checks (user
// edit/remove) stay in the handlers where the target is known.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authz.CanManageItems(ActingUser(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

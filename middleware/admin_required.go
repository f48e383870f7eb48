// Middleware that checks if the caller is an admin.
// File: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sports-scheduler/logger"
	"sports-scheduler/store"
)

// AdminRequired loads the authenticated caller's account and aborts with
// 403 unless it carries the admin flag. Must run after AuthRequired.
func AdminRequired(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil || !user.IsAdmin {
			logger.Warn.Printf("AdminRequired: blocked non-admin %s on %s", id.Hex(), c.Request.URL.Path)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}

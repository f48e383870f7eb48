// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/logger"
)

// userIDKey is the gin context key the resolved identity is stored under.
const userIDKey = "userID"

// headerUserID lets non-browser API clients supply their identity
// directly; the login cookie session takes precedence when both exist.
const headerUserID = "X-User-Id"

// -------------- authentication middleware --------------

// AuthRequired resolves the caller's identity from the login session or
// the X-User-Id header and aborts with 401 when neither yields a valid
// user id. Downstream handlers read the id via CurrentUserID.
func AuthRequired(c *gin.Context) {
	id, ok := IdentityFromRequest(c)
	if !ok {
		logger.Warn.Printf("AuthRequired: no identity on %s %s", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}
	c.Set(userIDKey, id)
	c.Next()
}

// IdentityFromRequest resolves the caller's id without aborting, for
// endpoints where identity is optional.
func IdentityFromRequest(c *gin.Context) (primitive.ObjectID, bool) {
	session := sessions.Default(c)
	if raw, ok := session.Get(userIDKey).(string); ok {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			return id, true
		}
	}
	if raw := c.GetHeader(headerUserID); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			return id, true
		}
	}
	return primitive.NilObjectID, false
}

// CurrentUserID returns the identity AuthRequired stored on the context.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

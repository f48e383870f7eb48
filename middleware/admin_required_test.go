// File: middleware/admin_required_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/models"
	"sports-scheduler/store"
)

func adminProbe(t *testing.T) (*gin.Engine, *store.Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	stores := store.NewMemoryStores()
	r := gin.New()
	r.Use(sessions.Sessions("scheduler_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/admin-only", AuthRequired, AdminRequired(stores.Users), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, stores
}

func hitAsUser(r *gin.Engine, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	if id != "" {
		req.Header.Set("X-User-Id", id)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRequired(t *testing.T) {
	r, stores := adminProbe(t)

	admin := &models.User{Name: "admin", Email: "admin@example.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, stores.Users.Insert(context.Background(), admin))
	regular := &models.User{Name: "regular", Email: "regular@example.com", PasswordHash: "x"}
	require.NoError(t, stores.Users.Insert(context.Background(), regular))

	assert.Equal(t, http.StatusUnauthorized, hitAsUser(r, "").Code)
	assert.Equal(t, http.StatusForbidden, hitAsUser(r, regular.ID.Hex()).Code)
	// unknown account is refused, not treated as admin
	assert.Equal(t, http.StatusForbidden, hitAsUser(r, primitive.NewObjectID().Hex()).Code)
	assert.Equal(t, http.StatusOK, hitAsUser(r, admin.ID.Hex()).Code)
}

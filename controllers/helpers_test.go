// File: controllers/helpers_test.go
package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"sports-scheduler/models"
	"sports-scheduler/services"
	"sports-scheduler/store"
)

// setupTestRouter wires the full router over in-memory stores and a mock
// notifier, the same construction main uses in production.
func setupTestRouter(t *testing.T) (*gin.Engine, *store.Stores, *services.MockNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	stores := store.NewMemoryStores()
	notifier := &services.MockNotifier{}
	router := NewRouter(stores, notifier, "test-secret")
	return router, stores, notifier
}

// seedUser inserts an account directly, bypassing registration. Tests
// that exercise the login flow register through the endpoint instead.
func seedUser(t *testing.T, stores *store.Stores, name string, admin bool) *models.User {
	t.Helper()
	u := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "not-a-real-hash",
		IsAdmin:      admin,
	}
	require.NoError(t, stores.Users.Insert(context.Background(), u))
	return u
}

// doJSON performs a request against the router. asUser, when non-empty,
// is sent as the X-User-Id identity header.
func doJSON(t *testing.T, router *gin.Engine, method, path, asUser string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set("X-User-Id", asUser)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// requireStatus fails with the response body when the status is wrong,
// which makes broken handler tests much easier to read.
func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}

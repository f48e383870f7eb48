//go:build integration

// File: integration/api_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-scheduler/controllers"
	"sports-scheduler/services"
	"sports-scheduler/store"
)

// apiClient drives the HTTP API as one logged-in user, carrying the
// session cookie between calls.
type apiClient struct {
	t       *testing.T
	server  *httptest.Server
	cookies []*http.Cookie
}

func (c *apiClient) do(method, path string, body interface{}) (int, map[string]interface{}) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if cookies := resp.Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

// signUp registers and logs a user in, returning a client bound to their
// session.
func signUp(t *testing.T, server *httptest.Server, name, role string) *apiClient {
	t.Helper()
	c := &apiClient{t: t, server: server}
	email := fmt.Sprintf("%s@example.com", name)

	status, _ := c.do(http.MethodPost, "/register", map[string]string{
		"name": name, "email": email, "password": "s3cret", "role": role,
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodPost, "/login", map[string]string{
		"email": email, "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, c.cookies, "login must set the session cookie")
	return c
}

// TestFullLifecycle walks the whole API the way the client does: an
// admin sets up the catalog, a creator schedules, players request and
// get approved until the session fills, and the admin reads the report.
func TestFullLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stores := store.NewMemoryStores()
	notifier := &services.MockNotifier{}
	server := httptest.NewServer(controllers.NewRouter(stores, notifier, "integration-secret"))
	defer server.Close()

	admin := signUp(t, server, "admin", "admin")
	creator := signUp(t, server, "creator", "user")
	playerOne := signUp(t, server, "player-one", "user")
	playerTwo := signUp(t, server, "player-two", "user")
	latecomer := signUp(t, server, "latecomer", "user")

	// admin creates the sport; the creator may not
	status, _ := creator.do(http.MethodPost, "/sports", map[string]string{"name": "Chess"})
	require.Equal(t, http.StatusForbidden, status)
	status, body := admin.do(http.MethodPost, "/sports", map[string]string{"name": "Chess"})
	require.Equal(t, http.StatusCreated, status)
	sportID := body["sport"].(map[string]interface{})["id"].(string)

	status, body = creator.do(http.MethodPost, "/sessions", map[string]interface{}{
		"sport": sportID, "date": "2099-06-15", "time": "18:00",
		"venue": "Club House", "neededPlayers": 2,
	})
	require.Equal(t, http.StatusCreated, status)
	sessionID := body["session"].(map[string]interface{})["id"].(string)

	// both players request; the creator approves them one by one
	for _, p := range []*apiClient{playerOne, playerTwo} {
		status, _ = p.do(http.MethodPost, "/sessions/join/"+sessionID, nil)
		require.Equal(t, http.StatusOK, status)
	}

	status, body = creator.do(http.MethodGet, "/sessions/"+sessionID+"/pending", nil)
	require.Equal(t, http.StatusOK, status)
	pending := body["pending"].([]interface{})
	require.Len(t, pending, 2)

	for _, raw := range pending {
		playerID := raw.(map[string]interface{})["id"].(string)
		status, _ = creator.do(http.MethodPost, "/sessions/"+sessionID+"/approve",
			map[string]string{"playerId": playerID})
		require.Equal(t, http.StatusOK, status)
	}

	// the session is now full
	status, body = latecomer.do(http.MethodPost, "/sessions/join/"+sessionID, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "no slots available", body["error"])

	// dashboards reflect the memberships
	status, body = playerOne.do(http.MethodGet, "/sessions", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["joined"].([]interface{}), 1)
	view := body["joined"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Chess", view["sport"])
	assert.Equal(t, float64(2), view["joinedCount"])
	assert.Equal(t, float64(0), view["neededPlayers"])

	// one player leaves, freeing a slot for the latecomer
	status, _ = playerTwo.do(http.MethodPost, "/sessions/leave/"+sessionID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = latecomer.do(http.MethodPost, "/sessions/join/"+sessionID, nil)
	require.Equal(t, http.StatusOK, status)

	// admin report counts the one active session
	status, body = admin.do(http.MethodGet, "/reports", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["totalSessions"])
	assert.Equal(t, map[string]interface{}{"Chess": float64(1)}, body["popularity"])

	// cancellation ends the lifecycle
	status, _ = creator.do(http.MethodPost, "/sessions/"+sessionID+"/cancel",
		map[string]string{"reason": "venue closed"})
	require.Equal(t, http.StatusOK, status)
	status, body = latecomer.do(http.MethodPost, "/sessions/join/"+sessionID, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "session is cancelled", body["error"])

	// the lifecycle produced notifications for every decision
	assert.NotEmpty(t, notifier.Sent())
}

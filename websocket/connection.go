// File: websocket/connection.go
package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"sports-scheduler/logger"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 10 * time.Second
	sendBuffer   = 16
)

// ServeWs upgrades the request and registers the connection for the
// given user. The caller has already authenticated the user.
func ServeWs(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("ServeWs: upgrade failed: %v", err)
		return
	}

	cl := &client{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBuffer),
	}

	clientsMu.Lock()
	clients[cl] = true
	count := len(clients)
	clientsMu.Unlock()

	logger.Info.Printf("ServeWs: user %s connected (%d active)", userID, count)
	PublishActiveConnections(count)

	go cl.writePump()
	go cl.readPump()
}

// readPump discards inbound frames; its job is to notice the close.
func (cl *client) readPump() {
	defer cl.close()
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump delivers queued notifications and keeps the connection alive
// with periodic pings.
func (cl *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer cl.close()

	failedPings := 0
	for {
		select {
		case msg, ok := <-cl.send:
			if !ok {
				return
			}
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn.Printf("writePump: write to %s failed: %v", cl.userID, err)
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				failedPings++
				logger.Warn.Printf("writePump: ping failed (%d/3) for %s: %v", failedPings, cl.userID, err)
				if failedPings >= 3 {
					return
				}
			} else {
				failedPings = 0
			}
		}
	}
}

func (cl *client) close() {
	clientsMu.Lock()
	if _, ok := clients[cl]; !ok {
		clientsMu.Unlock()
		return
	}
	delete(clients, cl)
	count := len(clients)
	// safe: the hub only sends while holding clientsMu and the client is
	// no longer in the map
	close(cl.send)
	clientsMu.Unlock()

	_ = cl.conn.Close()
	logger.Info.Printf("connection closed for user %s (%d active)", cl.userID, count)
	PublishActiveConnections(count)
}

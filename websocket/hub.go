// File: websocket/hub.go
package websocket

import (
	"encoding/json"
	"os"

	"sports-scheduler/logger"
)

func applicationURL() string {
	if url := os.Getenv("APPLICATION_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// HandleMessages drains the notification channel and distributes each
// envelope to the matching connections. Run once, in its own goroutine.
func HandleMessages() {
	for env := range notifications {
		targets := make(map[string]bool, len(env.userIDs))
		for _, id := range env.userIDs {
			targets[id] = true
		}

		clientsMu.Lock()
		for cl := range clients {
			if len(targets) > 0 && !targets[cl.userID] {
				continue
			}
			select {
			case cl.send <- env.payload:
			default:
				logger.Warn.Printf("Dropping notification for slow connection %v", cl.conn.RemoteAddr())
			}
		}
		clientsMu.Unlock()
	}
}

// Messenger adapts the hub to the services' Notifier interface.
type Messenger struct{}

// Notify marshals the event and queues it for the targeted users.
func (Messenger) Notify(userIDs []string, event map[string]interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error.Printf("Messenger: error marshalling event: %v", err)
		return
	}
	select {
	case notifications <- envelope{userIDs: userIDs, payload: payload}:
	default:
		logger.Warn.Println("Messenger: notification channel full, event dropped")
	}
}

// Broadcast queues a raw payload for every connected client.
func Broadcast(payload []byte) {
	select {
	case notifications <- envelope{payload: payload}:
	default:
		logger.Warn.Println("Broadcast: notification channel full, event dropped")
	}
}

// ConnectionCount reports how many dashboards are connected.
func ConnectionCount() int {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	return len(clients)
}

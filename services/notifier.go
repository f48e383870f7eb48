// File: services/notifier.go
package services

// Notifier pushes a lifecycle event to a set of users. The websocket hub
// provides the real implementation; tests inject a mock.
type Notifier interface {
	Notify(userIDs []string, event map[string]interface{})
}

// noopNotifier is used when no hub is wired (unit tests, one-off tools).
type noopNotifier struct{}

func (noopNotifier) Notify([]string, map[string]interface{}) {}

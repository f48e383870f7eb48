// File: services/mock_notifier.go
package services

import "sync"

// MockNotifier records every notification for assertions in tests.
type MockNotifier struct {
	mu     sync.Mutex
	Events []MockNotification
}

// MockNotification is one recorded Notify call.
type MockNotification struct {
	UserIDs []string
	Event   map[string]interface{}
}

// Notify appends the call to the recorded list.
func (m *MockNotifier) Notify(userIDs []string, event map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, MockNotification{UserIDs: userIDs, Event: event})
}

// Sent returns a snapshot of the recorded notifications.
func (m *MockNotifier) Sent() []MockNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockNotification(nil), m.Events...)
}

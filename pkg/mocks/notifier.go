// Package mocks provides in-memory collaborator doubles for tests.
package mocks

import (
	"context"
	"sync"

	"github.com/medforge/ruleflow/pkg/protocol"
)

// Notifier records every notification it receives.
type Notifier struct {
	mu       sync.Mutex
	Err      error
	Received []protocol.Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) CreateNotification(_ context.Context, notification protocol.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Err != nil {
		return n.Err
	}

	n.Received = append(n.Received, notification)

	return nil
}

// Notifications returns a copy of everything recorded so far.
func (n *Notifier) Notifications() []protocol.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]protocol.Notification, len(n.Received))
	copy(out, n.Received)

	return out
}

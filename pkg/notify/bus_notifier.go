package notify

import (
	"context"

	"github.com/medforge/ruleflow/pkg/eventbus"
	"github.com/medforge/ruleflow/pkg/events"
	"github.com/medforge/ruleflow/pkg/protocol"
)

// BusNotifier publishes notification intents onto the event bus for a
// downstream delivery service to consume.
type BusNotifier struct {
	publisher eventbus.EventPublisher
}

func NewBusNotifier(publisher eventbus.EventPublisher) *BusNotifier {
	return &BusNotifier{publisher: publisher}
}

func (n *BusNotifier) CreateNotification(ctx context.Context, notification protocol.Notification) error {
	event := events.NotificationRequested{
		BaseEvent: events.NewBaseEvent(events.NotificationRequestedEvent),
		UserID:    notification.UserID,
		Title:     notification.Title,
		Message:   notification.Message,
		Severity:  string(notification.Type),
		Category:  notification.Category,
		Priority:  notification.Priority,
		RelatedID: notification.RelatedID,
	}

	return n.publisher.Publish(ctx, notification.UserID, event)
}

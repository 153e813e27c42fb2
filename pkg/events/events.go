// Package events defines the event types flowing through the bus: inbound
// entity events from domain stores and outbound execution lifecycle events
// emitted by the engine.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/medforge/ruleflow/pkg/models"
)

type EventType string

// Kafka topics.
const EntityEventTopic = "ruleflow.entity.events"   // Inbound domain events
const ExecutionTopic = "ruleflow.execution.results" // Outbound execution results
const NotificationTopic = "ruleflow.notifications"  // Outbound notification intents

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	EntityEventReceived EventType = "entity.event.received"

	ExecutionCompletedEvent EventType = "execution.completed"
	ExecutionFailedEvent    EventType = "execution.failed"

	NotificationRequestedEvent EventType = "notification.requested"
)

type Event interface {
	GetType() EventType
}

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

// EntityEvent is a domain occurrence a store publishes for evaluation, such
// as a document status change or a task going overdue.
type EntityEvent struct {
	BaseEvent

	Entity     models.TriggerEntity `json:"entity"`
	Event      models.TriggerEvent  `json:"event"`
	EntityID   string               `json:"entity_id"`
	EntityData map[string]any       `json:"entity_data"`
}

func (e EntityEvent) GetType() EventType {
	return EntityEventReceived
}

// ExecutionCompleted is emitted for every workflow execution that finished
// with all actions in a terminal non-failed state.
type ExecutionCompleted struct {
	BaseEvent

	Log models.ExecutionLog `json:"log"`
}

func (e ExecutionCompleted) GetType() EventType {
	return ExecutionCompletedEvent
}

// ExecutionFailed is emitted for every workflow execution in which at least
// one action failed.
type ExecutionFailed struct {
	BaseEvent

	Log models.ExecutionLog `json:"log"`
}

func (e ExecutionFailed) GetType() EventType {
	return ExecutionFailedEvent
}

// NotificationRequested carries a notification intent for hosts that deliver
// through the bus instead of a direct notifier.
type NotificationRequested struct {
	BaseEvent

	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	Category  string `json:"category"`
	Priority  string `json:"priority,omitempty"`
	RelatedID string `json:"related_id,omitempty"`
}

func (e NotificationRequested) GetType() EventType {
	return NotificationRequestedEvent
}

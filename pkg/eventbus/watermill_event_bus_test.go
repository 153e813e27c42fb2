package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medforge/ruleflow/pkg/channels/gochannel"
	"github.com/medforge/ruleflow/pkg/events"
	"github.com/medforge/ruleflow/pkg/models"
)

func TestWatermillEventBus_EntityEventRoundTrip(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer bus.Close()

	received := make(chan *events.EntityEvent, 1)

	err = bus.Handle(events.EntityEventReceived, func(_ context.Context, event any) error {
		entityEvent, ok := event.(*events.EntityEvent)
		require.True(t, ok)
		received <- entityEvent

		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx, events.EntityEventTopic))

	sent := events.EntityEvent{
		BaseEvent:  events.NewBaseEvent(events.EntityEventReceived),
		Entity:     models.EntityDocument,
		Event:      models.EventStatusChanged,
		EntityID:   "doc-1",
		EntityData: map[string]any{"status": "published"},
	}

	require.NoError(t, bus.Publish(ctx, "doc-1", sent))

	select {
	case got := <-received:
		assert.Equal(t, sent.EntityID, got.EntityID)
		assert.Equal(t, models.EntityDocument, got.Entity)
		assert.Equal(t, "published", got.EntityData["status"])
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for entity event")
	}
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, events.EntityEventTopic, topicFor(events.EntityEventReceived))
	assert.Equal(t, events.NotificationTopic, topicFor(events.NotificationRequestedEvent))
	assert.Equal(t, events.ExecutionTopic, topicFor(events.ExecutionCompletedEvent))
	assert.Equal(t, events.ExecutionTopic, topicFor(events.ExecutionFailedEvent))
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer bus.Close()

	assert.NotEmpty(t, bus.GenerateID())
	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}

package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medforge/ruleflow/pkg/log"
	"github.com/medforge/ruleflow/pkg/mocks"
	"github.com/medforge/ruleflow/pkg/protocol"
)

func TestNotificationAction_Execute(t *testing.T) {
	notifier := mocks.NewNotifier()
	directory := mocks.NewDirectory(
		protocol.User{ID: "u1", Name: "Ana", Role: "Quality Manager"},
		protocol.User{ID: "u2", Name: "Bruno", Role: "quality manager"},
		protocol.User{ID: "u3", Name: "Carla", Role: "Auditor"},
	)

	factory := NewFactory(notifier, directory)
	action, err := factory.Create(map[string]any{
		"title":              "Document {{entity.title}} updated",
		"message":            "Status is now {{entity.status}}",
		"priority":           "critical",
		"recipient_user_ids": []any{"u3"},
		"recipient_roles":    []any{"Quality Manager"},
	})
	require.NoError(t, err)

	entityCtx := protocol.EntityContext{
		EntityID: "doc-1",
		Data:     map[string]any{"title": "SOP-7", "status": "published"},
	}

	message, err := action.Execute(context.Background(), entityCtx, log.WithModule("test"))
	require.NoError(t, err)
	assert.Equal(t, "Notified 3 user(s)", message)

	received := notifier.Notifications()
	require.Len(t, received, 3)
	assert.Equal(t, "u3", received[0].UserID)
	assert.Equal(t, "Document SOP-7 updated", received[0].Title)
	assert.Equal(t, "Status is now published", received[0].Message)
	assert.Equal(t, protocol.NotificationError, received[0].Type)
	assert.Equal(t, "system", received[0].Category)
	assert.Equal(t, "doc-1", received[0].RelatedID)
}

func TestNotificationAction_DeliveryFailureDoesNotFailAction(t *testing.T) {
	notifier := mocks.NewNotifier()
	notifier.Err = errors.New("smtp down")
	directory := mocks.NewDirectory(protocol.User{ID: "u1", Role: "Admin"})

	factory := NewFactory(notifier, directory)
	action, err := factory.Create(map[string]any{
		"title":           "Alert",
		"message":         "Check this",
		"priority":        "high",
		"recipient_roles": []any{"Admin"},
	})
	require.NoError(t, err)

	message, err := action.Execute(context.Background(), protocol.EntityContext{EntityID: "x"}, log.WithModule("test"))
	require.NoError(t, err)
	assert.Equal(t, "Notified 1 user(s)", message)
}

func TestNotificationAction_DirectoryFailure(t *testing.T) {
	notifier := mocks.NewNotifier()
	directory := mocks.NewDirectory()
	directory.Err = errors.New("directory offline")

	factory := NewFactory(notifier, directory)
	action, err := factory.Create(map[string]any{
		"title":           "Alert",
		"message":         "Check this",
		"recipient_roles": []any{"Admin"},
	})
	require.NoError(t, err)

	_, err = action.Execute(context.Background(), protocol.EntityContext{EntityID: "x"}, log.WithModule("test"))
	assert.Error(t, err)
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, protocol.NotificationError, severityFor("critical"))
	assert.Equal(t, protocol.NotificationWarning, severityFor("high"))
	assert.Equal(t, protocol.NotificationInfo, severityFor("medium"))
	assert.Equal(t, protocol.NotificationInfo, severityFor(""))
}

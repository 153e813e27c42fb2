package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medforge/ruleflow/pkg/log"
	"github.com/medforge/ruleflow/pkg/protocol"
)

func TestStatusAction_LogsIntentOnly(t *testing.T) {
	factory := NewFactory()
	action, err := factory.Create(map[string]any{"target_status": "approved"})
	require.NoError(t, err)

	entityCtx := protocol.EntityContext{
		EntityID: "doc-1",
		Data:     map[string]any{"status": "draft"},
	}

	message, err := action.Execute(context.Background(), entityCtx, log.WithModule("test"))
	require.NoError(t, err)
	assert.Equal(t, "Status change intent logged: → approved", message)

	// The engine never writes back into the triggering entity.
	assert.Equal(t, "draft", entityCtx.Data["status"])
}

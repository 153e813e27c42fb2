package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medforge/ruleflow/pkg/log"
	"github.com/medforge/ruleflow/pkg/protocol"
)

func TestCommentAction_Execute(t *testing.T) {
	factory := NewFactory()
	action, err := factory.Create(map[string]any{
		"comment": "Auto-flagged: {{entity.title}} is {{entity.status}}",
	})
	require.NoError(t, err)

	entityCtx := protocol.EntityContext{
		EntityID: "doc-2",
		Data:     map[string]any{"title": "SOP-1", "status": "overdue"},
	}

	message, err := action.Execute(context.Background(), entityCtx, log.WithModule("test"))
	require.NoError(t, err)
	assert.Equal(t, "Comment added: Auto-flagged: SOP-1 is overdue", message)
}

func TestCommentAction_MissingTokenResolvesEmpty(t *testing.T) {
	factory := NewFactory()
	action, err := factory.Create(map[string]any{"comment": "Owner: {{entity.owner.name}}"})
	require.NoError(t, err)

	message, err := action.Execute(context.Background(), protocol.EntityContext{EntityID: "x", Data: map[string]any{}}, log.WithModule("test"))
	require.NoError(t, err)
	assert.Equal(t, "Comment added: Owner: ", message)
}

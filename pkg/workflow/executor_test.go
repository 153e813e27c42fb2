package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medforge/ruleflow/pkg/log"
	"github.com/medforge/ruleflow/pkg/mocks"
	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/registry"
)

func newTestExecutor(notifier *mocks.Notifier, directory *mocks.Directory) *ActionExecutor {
	reg := registry.NewRegistry(log.WithModule("test"))
	reg.RegisterDefaultActions(notifier, directory)

	return NewActionExecutor(reg, log.WithModule("test"))
}

func TestActionExecutor_DelayedActionSkipped(t *testing.T) {
	executor := newTestExecutor(mocks.NewNotifier(), mocks.NewDirectory())

	result := executor.Execute(context.Background(), models.Action{
		ID:           "a1",
		Type:         models.ActionAddComment,
		DelayMinutes: 30,
		Config:       map[string]any{"comment": "later"},
	}, protocol.EntityContext{EntityID: "x"})

	assert.Equal(t, models.ExecutionStatusSkipped, result.Status)
	assert.Contains(t, result.Message, "Delayed action (30min)")
}

func TestActionExecutor_UnknownTypeSkipped(t *testing.T) {
	executor := newTestExecutor(mocks.NewNotifier(), mocks.NewDirectory())

	result := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionAIGenerate,
	}, protocol.EntityContext{EntityID: "x"})

	assert.Equal(t, models.ExecutionStatusSkipped, result.Status)
	assert.Contains(t, result.Message, "not yet implemented")
}

func TestActionExecutor_FailureBecomesFailedResult(t *testing.T) {
	directory := mocks.NewDirectory()
	directory.Err = assert.AnError
	executor := newTestExecutor(mocks.NewNotifier(), directory)

	result := executor.Execute(context.Background(), models.Action{
		ID:   "a1",
		Type: models.ActionEscalate,
		Config: map[string]any{
			"message": "help",
		},
	}, protocol.EntityContext{EntityID: "x"})

	assert.Equal(t, models.ExecutionStatusFailed, result.Status)
	assert.NotEmpty(t, result.Message)
}

func TestActionExecutor_Completed(t *testing.T) {
	executor := newTestExecutor(mocks.NewNotifier(), mocks.NewDirectory())

	result := executor.Execute(context.Background(), models.Action{
		ID:     "a1",
		Type:   models.ActionAddComment,
		Config: map[string]any{"comment": "done"},
	}, protocol.EntityContext{EntityID: "x"})

	assert.Equal(t, models.ExecutionStatusCompleted, result.Status)
	assert.Equal(t, "Comment added: done", result.Message)
	assert.False(t, result.ExecutedAt.IsZero())
}

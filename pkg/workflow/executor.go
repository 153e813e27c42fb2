package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/registry"
)

// ActionExecutor runs individual actions and folds every degenerate case
// into a result instead of an error: delayed actions and unregistered types
// are skipped, execution failures are failed results.
type ActionExecutor struct {
	registry *registry.Registry
	logger   *slog.Logger
}

func NewActionExecutor(reg *registry.Registry, logger *slog.Logger) *ActionExecutor {
	return &ActionExecutor{
		registry: reg,
		logger:   logger.With("module", "action_executor"),
	}
}

func (e *ActionExecutor) Execute(ctx context.Context, action models.Action, entityCtx protocol.EntityContext) models.ActionResult {
	executedAt := time.Now().UTC()

	if action.DelayMinutes > 0 {
		return models.ActionResult{
			ActionID:   action.ID,
			ActionType: action.Type,
			Status:     models.ExecutionStatusSkipped,
			Message:    fmt.Sprintf("Delayed action (%dmin) requires a background scheduler", action.DelayMinutes),
			ExecutedAt: executedAt,
		}
	}

	executable, err := e.registry.CreateAction(string(action.Type), action.Config)
	if err != nil {
		return models.ActionResult{
			ActionID:   action.ID,
			ActionType: action.Type,
			Status:     models.ExecutionStatusSkipped,
			Message:    fmt.Sprintf("Action type %q not yet implemented", action.Type),
			ExecutedAt: executedAt,
		}
	}

	message, err := executable.Execute(ctx, entityCtx, e.logger)
	if err != nil {
		e.logger.ErrorContext(ctx, "Action failed",
			"action_id", action.ID,
			"action_type", action.Type,
			"error", err)

		return models.ActionResult{
			ActionID:   action.ID,
			ActionType: action.Type,
			Status:     models.ExecutionStatusFailed,
			Message:    err.Error(),
			ExecutedAt: executedAt,
		}
	}

	return models.ActionResult{
		ActionID:   action.ID,
		ActionType: action.Type,
		Status:     models.ExecutionStatusCompleted,
		Message:    message,
		ExecutedAt: executedAt,
	}
}

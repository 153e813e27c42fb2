package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medforge/ruleflow/pkg/events"
	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/registry"
)

// ResultPublisher receives execution lifecycle events. Hosts that do not
// publish pass nil.
type ResultPublisher interface {
	Publish(ctx context.Context, key string, event events.Event) error
}

// Engine evaluates entity events against stored workflows and executes the
// actions of every workflow that matches.
type Engine struct {
	persistence persistence.Persistence
	matcher     *Matcher
	executor    *ActionExecutor
	publisher   ResultPublisher
	logger      *slog.Logger
}

func NewEngine(p persistence.Persistence, reg *registry.Registry, publisher ResultPublisher, logger *slog.Logger) *Engine {
	return &Engine{
		persistence: p,
		matcher:     NewMatcher(logger),
		executor:    NewActionExecutor(reg, logger),
		publisher:   publisher,
		logger:      logger.With("module", "workflow_engine"),
	}
}

// Evaluate runs every active workflow whose trigger and conditions match the
// event and returns the execution logs produced by this call only. No match
// means an empty slice and no stored log entries. A failure inside one
// workflow never prevents the remaining workflows from running.
func (e *Engine) Evaluate(ctx context.Context, event events.EntityEvent) ([]*models.ExecutionLog, error) {
	logger := e.logger.With(
		"entity", event.Entity,
		"event", event.Event,
		"entity_id", event.EntityID)

	active, err := e.persistence.WorkflowRepository().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workflows: %w", err)
	}

	matched := e.matcher.MatchWorkflows(event, active)
	if len(matched) == 0 {
		logger.DebugContext(ctx, "No workflows matched")

		return []*models.ExecutionLog{}, nil
	}

	logs := make([]*models.ExecutionLog, 0, len(matched))

	for _, wf := range matched {
		if !wf.ConditionGroup.Evaluate(event.EntityData) {
			logger.DebugContext(ctx, "Conditions not met", "workflow_id", wf.ID)

			continue
		}

		entry := e.runWorkflow(ctx, wf, event)
		logs = append(logs, entry)
	}

	return logs, nil
}

// runWorkflow executes one matched workflow end to end and returns its log
// entry. Panics from action code are contained here and recorded as a failed
// execution.
func (e *Engine) runWorkflow(ctx context.Context, wf *models.WorkflowDefinition, event events.EntityEvent) (entry *models.ExecutionLog) {
	logger := e.logger.With("workflow_id", wf.ID, "workflow_name", wf.Name)

	entry = &models.ExecutionLog{
		ID:              uuid.New().String(),
		WorkflowID:      wf.ID,
		WorkflowName:    wf.Name,
		TriggeredBy:     fmt.Sprintf("%s.%s", event.Entity, event.Event),
		TriggerEntityID: event.EntityID,
		StartedAt:       time.Now().UTC(),
		Status:          models.ExecutionStatusRunning,
		ActionResults:   []models.ActionResult{},
	}

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Workflow execution panicked", "panic", r)

			entry.Status = models.ExecutionStatusFailed
			entry.Error = fmt.Sprintf("workflow execution panicked: %v", r)
		}

		e.finishRun(ctx, wf, entry, logger)
	}()

	logger.InfoContext(ctx, "Executing workflow", "actions", len(wf.Actions))

	entityCtx := protocol.EntityContext{
		EntityID: event.EntityID,
		Data:     event.EntityData,
	}

	for _, action := range wf.SortedActions() {
		result := e.executor.Execute(ctx, action, entityCtx)
		entry.ActionResults = append(entry.ActionResults, result)
	}

	if entry.Failed() {
		entry.Status = models.ExecutionStatusFailed
	} else {
		entry.Status = models.ExecutionStatusCompleted
	}

	return entry
}

// finishRun stamps completion, persists the log entry, updates the
// workflow's execution stats, and publishes the outcome.
func (e *Engine) finishRun(ctx context.Context, wf *models.WorkflowDefinition, entry *models.ExecutionLog, logger *slog.Logger) {
	completedAt := time.Now().UTC()
	entry.CompletedAt = &completedAt

	if err := e.persistence.ExecutionLogRepository().Append(ctx, entry); err != nil {
		logger.ErrorContext(ctx, "Failed to persist execution log", "error", err)
	}

	if err := e.persistence.WorkflowRepository().IncrementExecutionStats(ctx, wf.ID, completedAt); err != nil {
		logger.ErrorContext(ctx, "Failed to update workflow execution stats", "error", err)
	}

	e.publishResult(ctx, entry, logger)

	logger.InfoContext(ctx, "Workflow execution finished",
		"execution_id", entry.ID,
		"status", entry.Status,
		"action_results", len(entry.ActionResults))
}

func (e *Engine) publishResult(ctx context.Context, entry *models.ExecutionLog, logger *slog.Logger) {
	if e.publisher == nil {
		return
	}

	var event events.Event
	if entry.Status == models.ExecutionStatusFailed {
		event = events.ExecutionFailed{
			BaseEvent: events.NewBaseEvent(events.ExecutionFailedEvent),
			Log:       *entry,
		}
	} else {
		event = events.ExecutionCompleted{
			BaseEvent: events.NewBaseEvent(events.ExecutionCompletedEvent),
			Log:       *entry,
		}
	}

	if err := e.publisher.Publish(ctx, entry.WorkflowID, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish execution result", "error", err)
	}
}

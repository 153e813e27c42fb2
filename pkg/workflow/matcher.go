package workflow

import (
	"log/slog"

	"github.com/medforge/ruleflow/pkg/events"
	"github.com/medforge/ruleflow/pkg/models"
)

// Matcher decides which workflows react to an entity event.
type Matcher struct {
	logger *slog.Logger
}

func NewMatcher(logger *slog.Logger) *Matcher {
	return &Matcher{
		logger: logger.With("module", "trigger_matcher"),
	}
}

// MatchWorkflows returns the active workflows whose trigger fires for the
// given event, in the order the workflows were provided.
func (m *Matcher) MatchWorkflows(event events.EntityEvent, workflows []*models.WorkflowDefinition) []*models.WorkflowDefinition {
	var matched []*models.WorkflowDefinition

	for _, workflow := range workflows {
		if !workflow.IsActive() {
			continue
		}

		if !m.Matches(event, workflow.Trigger) {
			continue
		}

		m.logger.Debug("Workflow trigger fired",
			"workflow_id", workflow.ID,
			"workflow_name", workflow.Name,
			"entity", event.Entity,
			"event", event.Event)

		matched = append(matched, workflow)
	}

	return matched
}

// Matches reports whether a single trigger fires for the event. Entity and
// event kinds must both match exactly, and every field filter must hold
// against the entity data.
func (m *Matcher) Matches(event events.EntityEvent, trigger models.Trigger) bool {
	if trigger.Entity != event.Entity || trigger.Event != event.Event {
		return false
	}

	for _, filter := range trigger.FieldFilters {
		if !filter.Evaluate(event.EntityData) {
			return false
		}
	}

	return true
}

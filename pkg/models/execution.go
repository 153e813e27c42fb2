package models

import "time"

// ExecutionLog is the immutable record of one workflow run. The engine
// creates it, fills in per-action results, and never mutates it after
// completion.
type ExecutionLog struct {
	ID              string          `json:"id"`
	WorkflowID      string          `json:"workflow_id"`
	WorkflowName    string          `json:"workflow_name"`
	TriggeredBy     string          `json:"triggered_by"` // "entity.event"
	TriggerEntityID string          `json:"trigger_entity_id"`
	StartedAt       time.Time       `json:"started_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	Status          ExecutionStatus `json:"status"`
	ActionResults   []ActionResult  `json:"action_results"`
	Error           string          `json:"error,omitempty"`
}

// Failed reports whether any action result failed. The overall execution
// status is failed iff at least one action failed or an error escaped the
// action loop.
func (l *ExecutionLog) Failed() bool {
	for _, result := range l.ActionResults {
		if result.Status == ExecutionStatusFailed {
			return true
		}
	}

	return false
}

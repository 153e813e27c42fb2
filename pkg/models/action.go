package models

import "time"

// ActionType identifies one kind of side-effecting work.
type ActionType string

const (
	ActionSendNotification ActionType = "send_notification"
	ActionCreateTask       ActionType = "create_task"
	ActionChangeStatus     ActionType = "change_status"
	ActionEscalate         ActionType = "escalate"
	ActionAddComment       ActionType = "add_comment"

	// Recognized in stored definitions but not executable yet: they resolve
	// to a skipped result at run time.
	ActionAssignUser         ActionType = "assign_user"
	ActionCreateCAPA         ActionType = "create_capa"
	ActionSendEmailDigest    ActionType = "send_email_digest"
	ActionSetField           ActionType = "set_field"
	ActionStartApprovalChain ActionType = "start_approval_chain"
	ActionAIGenerate         ActionType = "ai_generate"
)

// Action is one unit of work executed when a workflow matches. Config is a
// type-specific shape; action factories decode and validate it.
type Action struct {
	ID   string     `json:"id"   validate:"required"`
	Type ActionType `json:"type" validate:"required"`
	// DelayMinutes > 0 means the action is never executed synchronously; it
	// is recorded as skipped and left to an external scheduler.
	DelayMinutes int            `json:"delay_minutes"`
	Order        int            `json:"order"`
	Config       map[string]any `json:"config"`
}

// ExecutionStatus is the lifecycle state of an execution or action result.
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusSkipped   ExecutionStatus = "skipped"
)

// ActionResult records the outcome of one action within a workflow run.
type ActionResult struct {
	ActionID   string          `json:"action_id"`
	ActionType ActionType      `json:"action_type"`
	Status     ExecutionStatus `json:"status"`
	Message    string          `json:"message,omitempty"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// Package web provides the HTTP surface for workflow management and event
// submission.
package web

import "github.com/medforge/ruleflow/pkg/models"

// CreateWorkflowRequest is the body for creating a workflow definition.
type CreateWorkflowRequest struct {
	Name           string                `json:"name"            validate:"required,min=3"`
	Description    string                `json:"description"`
	Category       string                `json:"category"`
	Status         models.WorkflowStatus `json:"status"          validate:"omitempty,oneof=active paused"`
	Trigger        models.Trigger        `json:"trigger"         validate:"required"`
	ConditionGroup models.ConditionGroup `json:"condition_group"`
	Actions        []models.Action       `json:"actions"         validate:"dive"`
	CreatedBy      string                `json:"created_by"      validate:"required"`
}

// UpdateWorkflowRequest supports partial updates. Execution stats cannot be
// set through the API.
type UpdateWorkflowRequest struct {
	Name           *string                `json:"name,omitempty"            validate:"omitempty,min=3"`
	Description    *string                `json:"description,omitempty"`
	Category       *string                `json:"category,omitempty"`
	Trigger        *models.Trigger        `json:"trigger,omitempty"`
	ConditionGroup *models.ConditionGroup `json:"condition_group,omitempty"`
	Actions        []models.Action        `json:"actions,omitempty"         validate:"omitempty,dive"`
}

// CreateFromTemplateRequest instantiates one of the built-in templates.
type CreateFromTemplateRequest struct {
	TemplateIndex int    `json:"template_index" validate:"min=0"`
	CreatedBy     string `json:"created_by"     validate:"required"`
}

// EvaluateRequest is an entity event submitted for synchronous evaluation.
type EvaluateRequest struct {
	Entity     models.TriggerEntity `json:"entity"      validate:"required"`
	Event      models.TriggerEvent  `json:"event"       validate:"required"`
	EntityID   string               `json:"entity_id"   validate:"required"`
	EntityData map[string]any       `json:"entity_data"`
}

// EvaluateResponse carries the execution logs produced by one evaluate call.
type EvaluateResponse struct {
	Executions []*models.ExecutionLog `json:"executions"`
}

// ActionTypeResponse describes one registered action type and its config
// schema.
type ActionTypeResponse struct {
	Type   string         `json:"type"`
	Schema map[string]any `json:"schema,omitempty"`
}

package models

import (
	"slices"
	"time"
)

// WorkflowStatus is the lifecycle state of a workflow definition. Only
// active definitions are evaluated.
type WorkflowStatus string

const (
	WorkflowStatusActive WorkflowStatus = "active"
	WorkflowStatusPaused WorkflowStatus = "paused"
)

// WorkflowCategory organizes definitions in the catalog.
type WorkflowCategory string

const (
	CategoryCompliance WorkflowCategory = "compliance"
	CategoryDocument   WorkflowCategory = "document"
	CategoryQuality    WorkflowCategory = "quality"
	CategorySafety     WorkflowCategory = "safety"
	CategoryTraining   WorkflowCategory = "training"
	CategoryCustom     WorkflowCategory = "custom"
)

// WorkflowDefinition is a persistent automation rule: a trigger, a gating
// condition group, and an ordered action list.
type WorkflowDefinition struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"        validate:"required,min=3"`
	Description    string           `json:"description"`
	Status         WorkflowStatus   `json:"status"      validate:"required,oneof=active paused"`
	Trigger        Trigger          `json:"trigger"`
	ConditionGroup ConditionGroup   `json:"condition_group"`
	Actions        []Action         `json:"actions"`
	Category       WorkflowCategory `json:"category,omitempty"`
	IsTemplate     bool             `json:"is_template,omitempty"`
	CreatedBy      string           `json:"created_by"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Execution stats, mutated only by the engine.
	ExecutionCount int        `json:"execution_count"`
	LastExecutedAt *time.Time `json:"last_executed_at,omitempty"`
}

// SortedActions returns the actions in ascending execution order. The sort
// is stable so equal orders keep their declared sequence.
func (w *WorkflowDefinition) SortedActions() []Action {
	sorted := slices.Clone(w.Actions)
	slices.SortStableFunc(sorted, func(a, b Action) int {
		return a.Order - b.Order
	})

	return sorted
}

// IsActive reports whether the definition participates in evaluation.
func (w *WorkflowDefinition) IsActive() bool {
	return w.Status == WorkflowStatusActive
}

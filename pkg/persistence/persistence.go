// Package persistence provides the storage abstraction for workflow
// definitions and execution logs.
package persistence

import (
	"context"
	"time"

	"github.com/medforge/ruleflow/pkg/models"
)

// MaxExecutionLogEntries caps the execution history. Appending beyond the
// cap evicts the oldest entries in the same operation.
const MaxExecutionLogEntries = 500

type Persistence interface {
	WorkflowRepository() WorkflowRepository
	ExecutionLogRepository() ExecutionLogRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// WorkflowRepository stores workflow definitions.
type WorkflowRepository interface {
	List(ctx context.Context) ([]*models.WorkflowDefinition, error)
	ListActive(ctx context.Context) ([]*models.WorkflowDefinition, error)
	GetByID(ctx context.Context, id string) (*models.WorkflowDefinition, error)
	Save(ctx context.Context, workflow *models.WorkflowDefinition) error
	Delete(ctx context.Context, id string) error

	// IncrementExecutionStats bumps the workflow's execution count by one
	// and records the run time. The increment is atomic within the store,
	// so concurrent runs never lose counts and never overwrite definition
	// fields edited in between.
	IncrementExecutionStats(ctx context.Context, id string, at time.Time) error
}

// ExecutionLogRepository stores execution logs most-recent-first, capped at
// MaxExecutionLogEntries with eager FIFO eviction.
type ExecutionLogRepository interface {
	Append(ctx context.Context, entry *models.ExecutionLog) error
	List(ctx context.Context) ([]*models.ExecutionLog, error)
	ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ExecutionLog, error)
	Clear(ctx context.Context) error
}

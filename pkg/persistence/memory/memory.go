// Package memory provides an in-memory persistence implementation. It is
// the default backend for embedded use and tests; all methods are safe for
// concurrent use.
package memory

import (
	"context"

	"github.com/medforge/ruleflow/pkg/persistence"
)

// Persistence implements persistence.Persistence backed by process memory.
type Persistence struct {
	workflowRepo *WorkflowRepository
	logRepo      *ExecutionLogRepository
}

// NewPersistence creates an empty in-memory persistence layer.
func NewPersistence() *Persistence {
	return &Persistence{
		workflowRepo: NewWorkflowRepository(),
		logRepo:      NewExecutionLogRepository(persistence.MaxExecutionLogEntries),
	}
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

func (p *Persistence) ExecutionLogRepository() persistence.ExecutionLogRepository {
	return p.logRepo
}

func (p *Persistence) HealthCheck(_ context.Context) error {
	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	return nil
}

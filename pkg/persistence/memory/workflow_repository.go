package memory

import (
	"context"
	"sync"
	"time"

	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
)

// WorkflowRepository stores workflow definitions in an ordered in-memory
// list. Reads return copies so callers cannot mutate stored definitions
// behind the repository's back.
type WorkflowRepository struct {
	mu        sync.RWMutex
	workflows []*models.WorkflowDefinition
}

func NewWorkflowRepository() *WorkflowRepository {
	return &WorkflowRepository{
		workflows: make([]*models.WorkflowDefinition, 0),
	}
}

func (r *WorkflowRepository) List(_ context.Context) ([]*models.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.WorkflowDefinition, 0, len(r.workflows))
	for _, workflow := range r.workflows {
		clone := *workflow
		result = append(result, &clone)
	}

	return result, nil
}

func (r *WorkflowRepository) ListActive(_ context.Context) ([]*models.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.WorkflowDefinition, 0)

	for _, workflow := range r.workflows {
		if workflow.IsActive() {
			clone := *workflow
			result = append(result, &clone)
		}
	}

	return result, nil
}

func (r *WorkflowRepository) GetByID(_ context.Context, id string) (*models.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, workflow := range r.workflows {
		if workflow.ID == id {
			clone := *workflow

			return &clone, nil
		}
	}

	return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
}

// Save inserts or replaces a definition, keyed by ID. Insertion order is
// preserved for existing definitions.
func (r *WorkflowRepository) Save(_ context.Context, workflow *models.WorkflowDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *workflow

	for i, existing := range r.workflows {
		if existing.ID == workflow.ID {
			r.workflows[i] = &clone

			return nil
		}
	}

	r.workflows = append(r.workflows, &clone)

	return nil
}

// IncrementExecutionStats mutates the stored definition under the write
// lock, so concurrent runs of the same workflow each land their count.
func (r *WorkflowRepository) IncrementExecutionStats(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, workflow := range r.workflows {
		if workflow.ID == id {
			workflow.ExecutionCount++
			workflow.LastExecutedAt = &at

			return nil
		}
	}

	return persistence.NewWorkflowError("IncrementExecutionStats", id, persistence.ErrWorkflowNotFound)
}

func (r *WorkflowRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, workflow := range r.workflows {
		if workflow.ID == id {
			r.workflows = append(r.workflows[:i], r.workflows[i+1:]...)

			return nil
		}
	}

	return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
}

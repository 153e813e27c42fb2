package memory

import (
	"context"
	"sync"

	"github.com/medforge/ruleflow/pkg/models"
)

// ExecutionLogRepository keeps execution logs most-recent-first in a capped
// in-memory list. Eviction is eager: the append that exceeds the cap drops
// the oldest entries in the same operation.
type ExecutionLogRepository struct {
	mu      sync.RWMutex
	entries []*models.ExecutionLog
	cap     int
}

func NewExecutionLogRepository(capacity int) *ExecutionLogRepository {
	return &ExecutionLogRepository{
		entries: make([]*models.ExecutionLog, 0),
		cap:     capacity,
	}
}

func (r *ExecutionLogRepository) Append(_ context.Context, entry *models.ExecutionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *entry
	r.entries = append([]*models.ExecutionLog{&clone}, r.entries...)

	if len(r.entries) > r.cap {
		r.entries = r.entries[:r.cap]
	}

	return nil
}

func (r *ExecutionLogRepository) List(_ context.Context) ([]*models.ExecutionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.ExecutionLog, 0, len(r.entries))
	for _, entry := range r.entries {
		clone := *entry
		result = append(result, &clone)
	}

	return result, nil
}

func (r *ExecutionLogRepository) ListByWorkflow(_ context.Context, workflowID string) ([]*models.ExecutionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.ExecutionLog, 0)

	for _, entry := range r.entries {
		if entry.WorkflowID == workflowID {
			clone := *entry
			result = append(result, &clone)
		}
	}

	return result, nil
}

func (r *ExecutionLogRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = r.entries[:0]

	return nil
}

// Len reports the current number of stored entries.
func (r *ExecutionLogRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
)

const workflowDirPerm = 0o755

// WorkflowRepository stores one JSON file per workflow definition.
type WorkflowRepository struct {
	root string
	mu   sync.RWMutex
}

func NewWorkflowRepository(root string) *WorkflowRepository {
	return &WorkflowRepository{root: root}
}

func (r *WorkflowRepository) workflowsDir() string {
	return filepath.Join(r.root, "workflows")
}

func (r *WorkflowRepository) workflowPath(id string) string {
	return filepath.Join(r.workflowsDir(), id+".json")
}

func (r *WorkflowRepository) List(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(ctx)
}

func (r *WorkflowRepository) listLocked(_ context.Context) ([]*models.WorkflowDefinition, error) {
	entries, err := fs.Glob(os.DirFS(r.workflowsDir()), "*.json")
	if err != nil || len(entries) == 0 {
		return make([]*models.WorkflowDefinition, 0), nil
	}

	workflows := make([]*models.WorkflowDefinition, 0, len(entries))

	for _, entry := range entries {
		id := strings.TrimSuffix(entry, ".json")

		workflow, err := r.readWorkflow(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load workflow %s: %w", id, err)
		}

		workflows = append(workflows, workflow)
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].CreatedAt.Before(workflows[j].CreatedAt)
	})

	return workflows, nil
}

func (r *WorkflowRepository) ListActive(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*models.WorkflowDefinition, 0)

	for _, workflow := range all {
		if workflow.IsActive() {
			active = append(active, workflow)
		}
	}

	return active, nil
}

func (r *WorkflowRepository) GetByID(_ context.Context, id string) (*models.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readWorkflow(id)
}

func (r *WorkflowRepository) readWorkflow(id string) (*models.WorkflowDefinition, error) {
	data, err := os.ReadFile(r.workflowPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	var workflow models.WorkflowDefinition
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode workflow %s: %w", id, err)
	}

	return &workflow, nil
}

func (r *WorkflowRepository) Save(_ context.Context, workflow *models.WorkflowDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.workflowsDir(), workflowDirPerm); err != nil {
		return fmt.Errorf("failed to create workflows directory: %w", err)
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workflow %s: %w", workflow.ID, err)
	}

	if err := os.WriteFile(r.workflowPath(workflow.ID), data, 0o600); err != nil {
		return fmt.Errorf("failed to write workflow file: %w", err)
	}

	return nil
}

// IncrementExecutionStats performs the read-increment-write under the
// repository's write lock, keeping concurrent runs from losing counts.
func (r *WorkflowRepository) IncrementExecutionStats(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	workflow, err := r.readWorkflow(id)
	if err != nil {
		return err
	}

	workflow.ExecutionCount++
	workflow.LastExecutedAt = &at

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workflow %s: %w", id, err)
	}

	if err := os.WriteFile(r.workflowPath(id), data, 0o600); err != nil {
		return fmt.Errorf("failed to write workflow file: %w", err)
	}

	return nil
}

func (r *WorkflowRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.workflowPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	return err
}

package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/medforge/ruleflow/pkg/models"
)

// ExecutionLogRepository stores the capped execution history as a single
// JSON document, most-recent-first. Each append rewrites the document with
// eviction already applied.
type ExecutionLogRepository struct {
	root string
	cap  int
	mu   sync.Mutex
}

func NewExecutionLogRepository(root string, capacity int) *ExecutionLogRepository {
	return &ExecutionLogRepository{root: root, cap: capacity}
}

func (r *ExecutionLogRepository) logPath() string {
	return filepath.Join(r.root, "execution_log.json")
}

func (r *ExecutionLogRepository) Append(_ context.Context, entry *models.ExecutionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return err
	}

	entries = append([]*models.ExecutionLog{entry}, entries...)
	if len(entries) > r.cap {
		entries = entries[:r.cap]
	}

	return r.write(entries)
}

func (r *ExecutionLogRepository) List(_ context.Context) ([]*models.ExecutionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

func (r *ExecutionLogRepository) ListByWorkflow(_ context.Context, workflowID string) ([]*models.ExecutionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.read()
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.ExecutionLog, 0)

	for _, entry := range entries {
		if entry.WorkflowID == workflowID {
			filtered = append(filtered, entry)
		}
	}

	return filtered, nil
}

func (r *ExecutionLogRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.logPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear execution log: %w", err)
	}

	return nil
}

func (r *ExecutionLogRepository) read() ([]*models.ExecutionLog, error) {
	data, err := os.ReadFile(r.logPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make([]*models.ExecutionLog, 0), nil
		}

		return nil, fmt.Errorf("failed to read execution log: %w", err)
	}

	var entries []*models.ExecutionLog
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode execution log: %w", err)
	}

	return entries, nil
}

func (r *ExecutionLogRepository) write(entries []*models.ExecutionLog) error {
	if err := os.MkdirAll(r.root, workflowDirPerm); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode execution log: %w", err)
	}

	if err := os.WriteFile(r.logPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write execution log: %w", err)
	}

	return nil
}

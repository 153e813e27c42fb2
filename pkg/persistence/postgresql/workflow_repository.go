package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
)

// WorkflowRepository handles workflow-related database operations.
type WorkflowRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(db *sql.DB, logger *slog.Logger) *WorkflowRepository {
	return &WorkflowRepository{db: db, logger: logger}
}

const workflowColumns = `
	id
  , name
  , description
  , status
  , trigger
  , condition_group
  , actions
  , category
  , is_template
  , created_by
  , created_at
  , updated_at
  , execution_count
  , last_executed_at
`

func (r *WorkflowRepository) List(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows ORDER BY created_at ASC`

	return r.queryWorkflows(ctx, query)
}

func (r *WorkflowRepository) ListActive(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows WHERE status = $1 ORDER BY created_at ASC`

	return r.queryWorkflows(ctx, query, string(models.WorkflowStatusActive))
}

func (r *WorkflowRepository) queryWorkflows(ctx context.Context, query string, args ...any) ([]*models.WorkflowDefinition, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	workflows := make([]*models.WorkflowDefinition, 0)

	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}

		workflows = append(workflows, workflow)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating workflows: %w", err)
	}

	return workflows, nil
}

func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows WHERE id = $1`

	workflow, err := scanWorkflow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
		}

		return nil, fmt.Errorf("failed to scan workflow: %w", err)
	}

	return workflow, nil
}

// Save upserts a workflow definition.
func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.WorkflowDefinition) error {
	triggerJSON, err := json.Marshal(workflow.Trigger)
	if err != nil {
		return fmt.Errorf("failed to encode trigger: %w", err)
	}

	conditionsJSON, err := json.Marshal(workflow.ConditionGroup)
	if err != nil {
		return fmt.Errorf("failed to encode condition group: %w", err)
	}

	actionsJSON, err := json.Marshal(workflow.Actions)
	if err != nil {
		return fmt.Errorf("failed to encode actions: %w", err)
	}

	query := `
		INSERT INTO workflows (
			id, name, description, status, trigger, condition_group, actions,
			category, is_template, created_by, created_at, updated_at,
			execution_count, last_executed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			trigger = EXCLUDED.trigger,
			condition_group = EXCLUDED.condition_group,
			actions = EXCLUDED.actions,
			category = EXCLUDED.category,
			is_template = EXCLUDED.is_template,
			updated_at = EXCLUDED.updated_at,
			execution_count = EXCLUDED.execution_count,
			last_executed_at = EXCLUDED.last_executed_at
	`

	_, err = r.db.ExecContext(ctx, query,
		workflow.ID,
		workflow.Name,
		workflow.Description,
		string(workflow.Status),
		triggerJSON,
		conditionsJSON,
		actionsJSON,
		string(workflow.Category),
		workflow.IsTemplate,
		workflow.CreatedBy,
		workflow.CreatedAt,
		workflow.UpdatedAt,
		workflow.ExecutionCount,
		workflow.LastExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save workflow %s: %w", workflow.ID, err)
	}

	return nil
}

// IncrementExecutionStats lets the database apply the increment, so
// concurrent runs and definition edits never race over the counter.
func (r *WorkflowRepository) IncrementExecutionStats(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE workflows
		SET execution_count = execution_count + 1, last_executed_at = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to update execution stats for workflow %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}

	if affected == 0 {
		return persistence.NewWorkflowError("IncrementExecutionStats", id, persistence.ErrWorkflowNotFound)
	}

	return nil
}

func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workflows WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}

	if affected == 0 {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(row rowScanner) (*models.WorkflowDefinition, error) {
	var (
		workflow       models.WorkflowDefinition
		status         string
		category       string
		triggerJSON    []byte
		conditionsJSON []byte
		actionsJSON    []byte
		lastExecutedAt sql.NullTime
	)

	err := row.Scan(
		&workflow.ID,
		&workflow.Name,
		&workflow.Description,
		&status,
		&triggerJSON,
		&conditionsJSON,
		&actionsJSON,
		&category,
		&workflow.IsTemplate,
		&workflow.CreatedBy,
		&workflow.CreatedAt,
		&workflow.UpdatedAt,
		&workflow.ExecutionCount,
		&lastExecutedAt,
	)
	if err != nil {
		return nil, err
	}

	workflow.Status = models.WorkflowStatus(status)
	workflow.Category = models.WorkflowCategory(category)

	if err := json.Unmarshal(triggerJSON, &workflow.Trigger); err != nil {
		return nil, fmt.Errorf("failed to decode trigger: %w", err)
	}

	if err := json.Unmarshal(conditionsJSON, &workflow.ConditionGroup); err != nil {
		return nil, fmt.Errorf("failed to decode condition group: %w", err)
	}

	if err := json.Unmarshal(actionsJSON, &workflow.Actions); err != nil {
		return nil, fmt.Errorf("failed to decode actions: %w", err)
	}

	if lastExecutedAt.Valid {
		workflow.LastExecutedAt = &lastExecutedAt.Time
	}

	return &workflow, nil
}

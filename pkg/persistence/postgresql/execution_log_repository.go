package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/models"
)

// ExecutionLogRepository stores execution logs in the execution_logs table.
// The append that exceeds the cap deletes the oldest rows in the same
// transaction, so eviction is eager here too.
type ExecutionLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
	cap    int
}

func NewExecutionLogRepository(db *sql.DB, logger *slog.Logger, capacity int) *ExecutionLogRepository {
	return &ExecutionLogRepository{db: db, logger: logger, cap: capacity}
}

func (r *ExecutionLogRepository) Append(ctx context.Context, entry *models.ExecutionLog) error {
	resultsJSON, err := json.Marshal(entry.ActionResults)
	if err != nil {
		return fmt.Errorf("failed to encode action results: %w", err)
	}

	transaction, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	insert := `
		INSERT INTO execution_logs (
			id, workflow_id, workflow_name, triggered_by, trigger_entity_id,
			started_at, completed_at, status, action_results, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = transaction.ExecContext(ctx, insert,
		entry.ID,
		entry.WorkflowID,
		entry.WorkflowName,
		entry.TriggeredBy,
		entry.TriggerEntityID,
		entry.StartedAt,
		entry.CompletedAt,
		string(entry.Status),
		resultsJSON,
		entry.Error,
	)
	if err != nil {
		_ = transaction.Rollback()

		return fmt.Errorf("failed to insert execution log: %w", err)
	}

	evict := `
		DELETE FROM execution_logs
		WHERE id NOT IN (
			SELECT id FROM execution_logs ORDER BY inserted_at DESC LIMIT $1
		)
	`

	_, err = transaction.ExecContext(ctx, evict, r.cap)
	if err != nil {
		_ = transaction.Rollback()

		return fmt.Errorf("failed to evict old execution logs: %w", err)
	}

	err = transaction.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit execution log: %w", err)
	}

	return nil
}

const executionLogColumns = `
	id
  , workflow_id
  , workflow_name
  , triggered_by
  , trigger_entity_id
  , started_at
  , completed_at
  , status
  , action_results
  , error
`

func (r *ExecutionLogRepository) List(ctx context.Context) ([]*models.ExecutionLog, error) {
	query := `SELECT ` + executionLogColumns + ` FROM execution_logs ORDER BY inserted_at DESC`

	return r.queryLogs(ctx, query)
}

func (r *ExecutionLogRepository) ListByWorkflow(ctx context.Context, workflowID string) ([]*models.ExecutionLog, error) {
	query := `SELECT ` + executionLogColumns + ` FROM execution_logs WHERE workflow_id = $1 ORDER BY inserted_at DESC`

	return r.queryLogs(ctx, query, workflowID)
}

func (r *ExecutionLogRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM execution_logs")
	if err != nil {
		return fmt.Errorf("failed to clear execution logs: %w", err)
	}

	return nil
}

func (r *ExecutionLogRepository) queryLogs(ctx context.Context, query string, args ...any) ([]*models.ExecutionLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query execution logs: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	entries := make([]*models.ExecutionLog, 0)

	for rows.Next() {
		var (
			entry       models.ExecutionLog
			status      string
			resultsJSON []byte
			completedAt sql.NullTime
		)

		err := rows.Scan(
			&entry.ID,
			&entry.WorkflowID,
			&entry.WorkflowName,
			&entry.TriggeredBy,
			&entry.TriggerEntityID,
			&entry.StartedAt,
			&completedAt,
			&status,
			&resultsJSON,
			&entry.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution log: %w", err)
		}

		entry.Status = models.ExecutionStatus(status)

		if err := json.Unmarshal(resultsJSON, &entry.ActionResults); err != nil {
			return nil, fmt.Errorf("failed to decode action results: %w", err)
		}

		if completedAt.Valid {
			entry.CompletedAt = &completedAt.Time
		}

		entries = append(entries, &entry)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating execution logs: %w", err)
	}

	return entries, nil
}

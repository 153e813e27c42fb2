package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
)

// Repository is the definition-management surface: CRUD, activation
// toggling, and template instantiation on top of the persistence layer.
type Repository struct {
	persistence persistence.Persistence
}

func NewRepository(p persistence.Persistence) *Repository {
	return &Repository{persistence: p}
}

func (r *Repository) HealthCheck(ctx context.Context) (string, bool) {
	if r.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := r.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func (r *Repository) FetchAll(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	workflows, err := r.persistence.WorkflowRepository().List(ctx)
	if err != nil {
		return make([]*models.WorkflowDefinition, 0), err
	}

	return workflows, nil
}

func (r *Repository) FetchActive(ctx context.Context) ([]*models.WorkflowDefinition, error) {
	return r.persistence.WorkflowRepository().ListActive(ctx)
}

func (r *Repository) FetchByID(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	workflow, err := r.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return workflow, nil
}

func (r *Repository) Create(ctx context.Context, workflow *models.WorkflowDefinition) (*models.WorkflowDefinition, error) {
	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if workflow.Status == "" {
		workflow.Status = models.WorkflowStatusPaused
	}

	// Execution stats are engine-owned and start at zero regardless of what
	// the caller sent.
	workflow.ExecutionCount = 0
	workflow.LastExecutedAt = nil

	if err := r.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, err
	}

	return workflow, nil
}

func (r *Repository) Update(ctx context.Context, id string, workflow *models.WorkflowDefinition) (*models.WorkflowDefinition, error) {
	existing, err := r.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workflow.ID = id
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	// Engine-owned fields survive definition edits untouched.
	workflow.ExecutionCount = existing.ExecutionCount
	workflow.LastExecutedAt = existing.LastExecutedAt

	if err := r.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, err
	}

	return workflow, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.persistence.WorkflowRepository().Delete(ctx, id)
}

// ToggleStatus flips a workflow between active and paused and returns the
// updated definition.
func (r *Repository) ToggleStatus(ctx context.Context, id string) (*models.WorkflowDefinition, error) {
	workflow, err := r.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow.Status == models.WorkflowStatusActive {
		workflow.Status = models.WorkflowStatusPaused
	} else {
		workflow.Status = models.WorkflowStatusActive
	}

	workflow.UpdatedAt = time.Now().UTC()

	if err := r.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, err
	}

	return workflow, nil
}

// CreateFromTemplate instantiates one of the built-in templates as a new
// workflow. The copy gets a fresh identity and zeroed execution stats; an
// out-of-range index is reported as ErrTemplateNotFound.
func (r *Repository) CreateFromTemplate(ctx context.Context, templateIndex int, createdBy string) (*models.WorkflowDefinition, error) {
	templates := models.WorkflowTemplates()
	if templateIndex < 0 || templateIndex >= len(templates) {
		return nil, persistence.ErrTemplateNotFound
	}

	workflow := templates[templateIndex]
	workflow.ID = uuid.New().String()
	workflow.IsTemplate = false
	workflow.CreatedBy = createdBy

	now := time.Now().UTC()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now
	workflow.ExecutionCount = 0
	workflow.LastExecutedAt = nil

	if err := r.persistence.WorkflowRepository().Save(ctx, &workflow); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// ExecutionLogs returns the stored history, most recent first.
func (r *Repository) ExecutionLogs(ctx context.Context) ([]*models.ExecutionLog, error) {
	return r.persistence.ExecutionLogRepository().List(ctx)
}

// ExecutionLogsByWorkflow filters the history to one workflow.
func (r *Repository) ExecutionLogsByWorkflow(ctx context.Context, workflowID string) ([]*models.ExecutionLog, error) {
	return r.persistence.ExecutionLogRepository().ListByWorkflow(ctx, workflowID)
}

// ClearExecutionLogs drops the stored history.
func (r *Repository) ClearExecutionLogs(ctx context.Context) error {
	return r.persistence.ExecutionLogRepository().Clear(ctx)
}

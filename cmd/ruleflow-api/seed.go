package main

import (
	"context"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/config"
	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
	"github.com/medforge/ruleflow/pkg/workflow"
)

// seedTemplates instantiates the configured built-in templates. Seeding only
// runs against an empty store so restarts do not duplicate workflows.
func seedTemplates(ctx context.Context, p persistence.Persistence, seed *config.SeedConfig, logger *slog.Logger) error {
	if len(seed.Templates) == 0 {
		return nil
	}

	existing, err := p.WorkflowRepository().List(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		logger.InfoContext(ctx, "Store already has workflows, skipping template seed", "count", len(existing))

		return nil
	}

	repository := workflow.NewRepository(p)

	for _, tmpl := range seed.Templates {
		created, err := repository.CreateFromTemplate(ctx, tmpl.Index, tmpl.CreatedBy)
		if err != nil {
			return err
		}

		if tmpl.Activate && created.Status != models.WorkflowStatusActive {
			if _, err := repository.ToggleStatus(ctx, created.ID); err != nil {
				return err
			}
		}

		logger.InfoContext(ctx, "Seeded workflow from template",
			"workflow_id", created.ID,
			"name", created.Name,
			"active", tmpl.Activate)
	}

	return nil
}

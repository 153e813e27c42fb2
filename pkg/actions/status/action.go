// Package status implements the change_status action. The engine does not
// write back into domain entities, so the action records the intended
// transition for the owning system to apply.
package status

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/protocol"
)

type Action struct {
	targetStatus string
}

func (a *Action) Execute(ctx context.Context, entityCtx protocol.EntityContext, logger *slog.Logger) (string, error) {
	logger.InfoContext(ctx, "Status change requested",
		"action_type", "change_status",
		"entity_id", entityCtx.EntityID,
		"target_status", a.targetStatus)

	return fmt.Sprintf("Status change intent logged: → %s", a.targetStatus), nil
}

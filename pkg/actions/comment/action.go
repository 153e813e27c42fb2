// Package comment implements the add_comment action. Like change_status it
// produces an intent the owning store applies; the resolved comment text is
// carried in the result message.
package comment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/template"
)

type Action struct {
	comment string
}

func (a *Action) Execute(ctx context.Context, entityCtx protocol.EntityContext, logger *slog.Logger) (string, error) {
	resolved := template.ResolveTokens(a.comment, entityCtx.Data)

	logger.InfoContext(ctx, "Comment recorded",
		"action_type", "add_comment",
		"entity_id", entityCtx.EntityID)

	return fmt.Sprintf("Comment added: %s", resolved), nil
}

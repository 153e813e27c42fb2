// Package escalate implements the escalate action: a critical notification
// fanned out to every user holding one of the configured roles.
package escalate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/actions/internal/recipients"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/template"
)

type Action struct {
	message   string
	roles     []string
	notifier  protocol.Notifier
	directory protocol.UserDirectory
}

func (a *Action) Execute(ctx context.Context, entityCtx protocol.EntityContext, logger *slog.Logger) (string, error) {
	logger = logger.With("action_type", "escalate")

	message := template.ResolveTokens(a.message, entityCtx.Data)

	targets, err := recipients.Resolve(ctx, a.directory, nil, a.roles)
	if err != nil {
		return "", err
	}

	for _, userID := range targets {
		notification := protocol.Notification{
			UserID:    userID,
			Title:     "Escalation",
			Message:   message,
			Type:      protocol.NotificationError,
			Category:  "system",
			Priority:  "critical",
			RelatedID: entityCtx.EntityID,
		}

		if err := a.notifier.CreateNotification(ctx, notification); err != nil {
			logger.WarnContext(ctx, "Failed to deliver escalation", "user_id", userID, "error", err)
		}
	}

	logger.InfoContext(ctx, "Escalated", "roles", a.roles, "recipients", len(targets))

	return fmt.Sprintf("Escalated to %d user(s)", len(targets)), nil
}

// Package notification implements the send_notification action: token
// substitution into the configured title and message, then one notification
// per unique recipient.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/actions/internal/recipients"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/template"
)

type Action struct {
	title     string
	message   string
	priority  string
	userIDs   []string
	roles     []string
	notifier  protocol.Notifier
	directory protocol.UserDirectory
}

func (a *Action) Execute(ctx context.Context, entityCtx protocol.EntityContext, logger *slog.Logger) (string, error) {
	logger = logger.With("action_type", "send_notification")

	title := template.ResolveTokens(a.title, entityCtx.Data)
	message := template.ResolveTokens(a.message, entityCtx.Data)

	targets, err := recipients.Resolve(ctx, a.directory, a.userIDs, a.roles)
	if err != nil {
		return "", err
	}

	for _, userID := range targets {
		notification := protocol.Notification{
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      severityFor(a.priority),
			Category:  "system",
			Priority:  a.priority,
			RelatedID: entityCtx.EntityID,
		}

		// Delivery is fire-and-forget: a failing notifier must not fail
		// the action.
		if err := a.notifier.CreateNotification(ctx, notification); err != nil {
			logger.WarnContext(ctx, "Failed to deliver notification", "user_id", userID, "error", err)
		}
	}

	logger.InfoContext(ctx, "Notifications dispatched", "recipients", len(targets))

	return fmt.Sprintf("Notified %d user(s)", len(targets)), nil
}

// severityFor maps action priority to notification severity.
func severityFor(priority string) protocol.NotificationType {
	switch priority {
	case "critical":
		return protocol.NotificationError
	case "high":
		return protocol.NotificationWarning
	default:
		return protocol.NotificationInfo
	}
}

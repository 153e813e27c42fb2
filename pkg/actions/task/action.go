// Package task implements the create_task action. Task creation is surfaced
// to assignees as a warning-level notification carrying the resolved title.
package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/actions/internal/recipients"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/template"
)

type Action struct {
	title       string
	description string
	priority    string
	userIDs     []string
	roles       []string
	notifier    protocol.Notifier
	directory   protocol.UserDirectory
}

func (a *Action) Execute(ctx context.Context, entityCtx protocol.EntityContext, logger *slog.Logger) (string, error) {
	logger = logger.With("action_type", "create_task")

	title := template.ResolveTokens(a.title, entityCtx.Data)
	description := template.ResolveTokens(a.description, entityCtx.Data)

	assignees, err := recipients.Resolve(ctx, a.directory, a.userIDs, a.roles)
	if err != nil {
		return "", err
	}

	for _, userID := range assignees {
		notification := protocol.Notification{
			UserID:    userID,
			Title:     fmt.Sprintf("New Task: %s", title),
			Message:   description,
			Type:      protocol.NotificationWarning,
			Category:  "task",
			Priority:  a.priority,
			RelatedID: entityCtx.EntityID,
		}

		if err := a.notifier.CreateNotification(ctx, notification); err != nil {
			logger.WarnContext(ctx, "Failed to deliver task notification", "user_id", userID, "error", err)
		}
	}

	logger.InfoContext(ctx, "Task assigned", "title", title, "assignees", len(assignees))

	return fmt.Sprintf("Task created for %d user(s): %s", len(assignees), title), nil
}

// Package notify provides notifier implementations behind the engine's
// notification port.
package notify

import (
	"context"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/protocol"
)

// LogNotifier writes notifications to the structured log. It is the default
// sink when no delivery channel is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With("module", "log_notifier"),
	}
}

func (n *LogNotifier) CreateNotification(ctx context.Context, notification protocol.Notification) error {
	n.logger.InfoContext(ctx, "Notification",
		"user_id", notification.UserID,
		"title", notification.Title,
		"message", notification.Message,
		"type", notification.Type,
		"category", notification.Category,
		"priority", notification.Priority,
		"related_id", notification.RelatedID)

	return nil
}

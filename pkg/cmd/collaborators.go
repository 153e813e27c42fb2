package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/medforge/ruleflow/pkg/directory"
	"github.com/medforge/ruleflow/pkg/eventbus"
	"github.com/medforge/ruleflow/pkg/notify"
	"github.com/medforge/ruleflow/pkg/protocol"
)

// NewUserDirectory builds the directory collaborator. A redis:// URL uses
// the shared Redis membership hash; any other value is read as a JSON file
// of users.
func NewUserDirectory(usersURL string) (protocol.UserDirectory, error) {
	if strings.HasPrefix(usersURL, "redis://") || strings.HasPrefix(usersURL, "rediss://") {
		return directory.NewRedis(usersURL)
	}

	data, err := os.ReadFile(usersURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var users []protocol.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file: %w", err)
	}

	return directory.NewStatic(users), nil
}

// NewNotifier selects the delivery sink: the event bus when publishing is
// available, the structured log otherwise.
func NewNotifier(publisher eventbus.EventPublisher, logger *slog.Logger) protocol.Notifier {
	if publisher != nil {
		return notify.NewBusNotifier(publisher)
	}

	return notify.NewLogNotifier(logger)
}

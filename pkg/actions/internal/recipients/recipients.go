// Package recipients resolves the target user set for user-facing actions:
// an explicit user-ID list unioned with role-based expansion through the
// user directory.
package recipients

import (
	"context"
	"fmt"

	"github.com/medforge/ruleflow/pkg/protocol"
)

// Resolve returns the deduplicated recipient user IDs, explicit IDs first,
// then role members in role order. Role matching is delegated to the
// directory, which compares case-insensitively.
func Resolve(ctx context.Context, directory protocol.UserDirectory, userIDs, roles []string) ([]string, error) {
	seen := make(map[string]struct{})
	resolved := make([]string, 0, len(userIDs))

	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}

	for _, role := range roles {
		users, err := directory.UsersByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve role %q: %w", role, err)
		}

		for _, user := range users {
			if _, ok := seen[user.ID]; ok {
				continue
			}

			seen[user.ID] = struct{}{}
			resolved = append(resolved, user.ID)
		}
	}

	return resolved, nil
}

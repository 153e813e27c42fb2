// Package directory provides user directory implementations backing
// recipient resolution.
package directory

import (
	"context"
	"strings"

	"github.com/medforge/ruleflow/pkg/protocol"
)

// Static serves a fixed membership list, typically loaded from
// configuration at startup.
type Static struct {
	users []protocol.User
}

func NewStatic(users []protocol.User) *Static {
	return &Static{users: users}
}

func (s *Static) Users(_ context.Context) ([]protocol.User, error) {
	out := make([]protocol.User, len(s.users))
	copy(out, s.users)

	return out, nil
}

// UsersByRole matches roles case-insensitively.
func (s *Static) UsersByRole(_ context.Context, role string) ([]protocol.User, error) {
	var matched []protocol.User

	for _, user := range s.users {
		if strings.EqualFold(user.Role, role) {
			matched = append(matched, user)
		}
	}

	return matched, nil
}

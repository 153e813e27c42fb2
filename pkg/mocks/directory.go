package mocks

import (
	"context"
	"strings"

	"github.com/medforge/ruleflow/pkg/protocol"
)

// Directory is a fixed-membership user directory.
type Directory struct {
	Members []protocol.User
	Err     error
}

func NewDirectory(members ...protocol.User) *Directory {
	return &Directory{Members: members}
}

func (d *Directory) Users(_ context.Context) ([]protocol.User, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	return d.Members, nil
}

func (d *Directory) UsersByRole(_ context.Context, role string) ([]protocol.User, error) {
	if d.Err != nil {
		return nil, d.Err
	}

	var matched []protocol.User

	for _, user := range d.Members {
		if strings.EqualFold(user.Role, role) {
			matched = append(matched, user)
		}
	}

	return matched, nil
}

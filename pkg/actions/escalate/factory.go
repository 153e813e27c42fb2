package escalate

import (
	"github.com/medforge/ruleflow/pkg/actions/internal/configmap"
	"github.com/medforge/ruleflow/pkg/protocol"
)

type Factory struct {
	notifier  protocol.Notifier
	directory protocol.UserDirectory
}

func NewFactory(notifier protocol.Notifier, directory protocol.UserDirectory) *Factory {
	return &Factory{notifier: notifier, directory: directory}
}

func (f *Factory) ID() string {
	return "escalate"
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	roles := configmap.StringSlice(config, "escalate_to_roles")
	if len(roles) == 0 {
		roles = []string{"Admin"}
	}

	return &Action{
		message:   configmap.String(config, "message"),
		roles:     roles,
		notifier:  f.notifier,
		directory: f.directory,
	}, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "Escalation message, supports {{entity.field}} tokens",
			},
			"escalate_to_roles": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Roles to escalate to, defaults to Admin",
			},
		},
	}
}

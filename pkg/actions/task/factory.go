package task

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
	return "create_task"
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	return &Action{
		title:       configmap.String(config, "title"),
		description: configmap.String(config, "description"),
		priority:    configmap.String(config, "priority"),
		userIDs:     configmap.StringSlice(config, "assign_to_user_ids"),
		roles:       configmap.StringSlice(config, "assign_to_roles"),
		notifier:    f.notifier,
		directory:   f.directory,
	}, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Task title, supports {{entity.field}} tokens",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Task description, supports {{entity.field}} tokens",
			},
			"priority": map[string]any{
				"type": "string",
				"enum": []string{"low", "medium", "high", "critical"},
			},
			"assign_to_user_ids": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"assign_to_roles": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}

package status

import (
	"github.com/medforge/ruleflow/pkg/actions/internal/configmap"
	"github.com/medforge/ruleflow/pkg/protocol"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) ID() string {
	return "change_status"
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	return &Action{
		targetStatus: configmap.String(config, "target_status"),
	}, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"target_status": map[string]any{
				"type":        "string",
				"description": "Status the owning store should transition the entity to",
			},
		},
		"required": []string{"target_status"},
	}
}

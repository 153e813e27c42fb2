package comment

import (
	"github.com/medforge/ruleflow/pkg/actions/internal/configmap"
	"github.com/medforge/ruleflow/pkg/protocol"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) ID() string {
	return "add_comment"
}

func (f *Factory) Create(config map[string]any) (protocol.Action, error) {
	return &Action{
		comment: configmap.String(config, "comment"),
	}, nil
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"comment": map[string]any{
				"type":        "string",
				"description": "Comment text, supports {{entity.field}} tokens",
			},
		},
		"required": []string{"comment"},
	}
}

// Package registry holds the action factories known to the engine.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/medforge/ruleflow/pkg/protocol"
)

type Registry struct {
	logger          *slog.Logger
	actionFactories map[string]protocol.ActionFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:          logger,
		actionFactories: make(map[string]protocol.ActionFactory),
	}
}

func (r *Registry) RegisterAction(factory protocol.ActionFactory) {
	r.actionFactories[factory.ID()] = factory
	r.logger.Debug("Registered action", "type", factory.ID())
}

// CreateAction builds an executable action for the given type tag. An
// unregistered type is an error the executor turns into a skipped result.
func (r *Registry) CreateAction(actionType string, config map[string]any) (protocol.Action, error) {
	factory, ok := r.actionFactories[actionType]
	if !ok {
		return nil, fmt.Errorf("action type '%s' not registered", actionType)
	}

	return factory.Create(config)
}

// IsRegistered checks if an action type is registered.
func (r *Registry) IsRegistered(actionType string) bool {
	_, ok := r.actionFactories[actionType]

	return ok
}

// ActionSchema returns the config schema for a registered action type, nil
// for unknown types.
func (r *Registry) ActionSchema(actionType string) map[string]any {
	factory, ok := r.actionFactories[actionType]
	if !ok {
		return nil
	}

	return factory.Schema()
}

// AvailableActions returns all registered action type tags.
func (r *Registry) AvailableActions() []string {
	types := make([]string, 0, len(r.actionFactories))
	for actionType := range r.actionFactories {
		types = append(types, actionType)
	}

	return types
}

// Package protocol defines the interfaces and contracts between the engine
// and its pluggable actions and external collaborators.
package protocol

import (
	"context"
	"log/slog"
)

// EntityContext carries the triggering event's payload into an action. Data
// is the flat-ish entity object addressed by dot-paths; EntityID is its id
// field, used to relate notifications back to the entity.
type EntityContext struct {
	EntityID string
	Data     map[string]any
}

// Action is one executable action kind. Execute returns a human-readable
// result message; an error marks the action result as failed but never
// aborts the surrounding workflow.
type Action interface {
	Execute(ctx context.Context, entityCtx EntityContext, logger *slog.Logger) (string, error)
}

// ActionFactory creates action instances from stored configuration and
// describes the action kind to the registry.
type ActionFactory interface {
	// Create builds an action from its stored config. Config errors surface
	// here, before execution.
	Create(config map[string]any) (Action, error)

	// ID returns the action type tag this factory serves.
	ID() string

	// Schema returns the JSON schema for the action's config.
	Schema() map[string]any
}

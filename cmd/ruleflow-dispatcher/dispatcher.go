// Package main provides the Ruleflow dispatcher: the event-bus consumer
// that evaluates entity events against stored workflows.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/medforge/ruleflow/pkg/eventbus"
	"github.com/medforge/ruleflow/pkg/events"
	"github.com/medforge/ruleflow/pkg/otelhelper"
	"github.com/medforge/ruleflow/pkg/persistence"
	"github.com/medforge/ruleflow/pkg/registry"
	"github.com/medforge/ruleflow/pkg/workflow"
)

type Dispatcher struct {
	dispatcherID string
	engine       *workflow.Engine
	eventBus     eventbus.EventBus
	tracer       trace.Tracer
	logger       *slog.Logger
}

func NewDispatcher(
	dispatcherID string,
	p persistence.Persistence,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		dispatcherID: dispatcherID,
		engine:       workflow.NewEngine(p, reg, eventBus, logger),
		eventBus:     eventBus,
		tracer:       tracer,
		logger:       logger.With("module", "dispatcher", "dispatcher_id", dispatcherID),
	}
}

// Start consumes entity events until the context is cancelled or a
// termination signal arrives.
func (d *Dispatcher) Start(ctx context.Context) error {
	if err := d.eventBus.Handle(events.EntityEventReceived, d.handleEntityEvent); err != nil {
		return fmt.Errorf("failed to register entity event handler: %w", err)
	}

	if err := d.eventBus.Subscribe(ctx, events.EntityEventTopic); err != nil {
		return fmt.Errorf("failed to subscribe to entity events: %w", err)
	}

	d.logger.InfoContext(ctx, "Dispatcher started", "topic", events.EntityEventTopic)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case sig := <-signals:
		d.logger.InfoContext(ctx, "Received shutdown signal", "signal", sig.String())
	}

	return nil
}

func (d *Dispatcher) handleEntityEvent(ctx context.Context, raw any) error {
	event, ok := raw.(*events.EntityEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", raw)
	}

	ctx, span := otelhelper.StartSpan(ctx, d.tracer, "ruleflow.evaluate",
		attribute.String(otelhelper.EntityKey, string(event.Entity)),
		attribute.String(otelhelper.EventKey, string(event.Event)),
		attribute.String(otelhelper.EntityIDKey, event.EntityID),
		attribute.String(otelhelper.ServiceIDKey, d.dispatcherID),
	)
	defer span.End()

	logs, err := d.engine.Evaluate(ctx, *event)
	if err != nil {
		otelhelper.SetError(span, err)

		return err
	}

	span.SetAttributes(attribute.Int("ruleflow.executions", len(logs)))

	return nil
}

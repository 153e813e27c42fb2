package workflow

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medforge/ruleflow/pkg/events"
	"github.com/medforge/ruleflow/pkg/log"
	"github.com/medforge/ruleflow/pkg/mocks"
	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
	"github.com/medforge/ruleflow/pkg/persistence/memory"
	"github.com/medforge/ruleflow/pkg/protocol"
	"github.com/medforge/ruleflow/pkg/registry"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, event)

	return nil
}

type engineFixture struct {
	engine      *Engine
	persistence persistence.Persistence
	registry    *registry.Registry
	notifier    *mocks.Notifier
	publisher   *recordingPublisher
}

func newEngineFixture(t *testing.T, directory *mocks.Directory) *engineFixture {
	t.Helper()

	notifier := mocks.NewNotifier()
	reg := registry.NewRegistry(log.WithModule("test"))
	reg.RegisterDefaultActions(notifier, directory)

	p := memory.NewPersistence()
	publisher := &recordingPublisher{}

	return &engineFixture{
		engine:      NewEngine(p, reg, publisher, log.WithModule("test")),
		persistence: p,
		registry:    reg,
		notifier:    notifier,
		publisher:   publisher,
	}
}

func (f *engineFixture) saveWorkflow(t *testing.T, wf *models.WorkflowDefinition) {
	t.Helper()
	require.NoError(t, f.persistence.WorkflowRepository().Save(context.Background(), wf))
}

func documentEvent(data map[string]any) events.EntityEvent {
	return events.EntityEvent{
		BaseEvent:  events.NewBaseEvent(events.EntityEventReceived),
		Entity:     models.EntityDocument,
		Event:      models.EventStatusChanged,
		EntityID:   "doc-1",
		EntityData: data,
	}
}

func TestEngine_EvaluateNoMatchReturnsEmpty(t *testing.T) {
	fixture := newEngineFixture(t, mocks.NewDirectory())
	ctx := context.Background()

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID:     "w1",
		Name:   "Tasks only",
		Status: models.WorkflowStatusActive,
		Trigger: models.Trigger{
			Entity: models.EntityTask,
			Event:  models.EventOverdue,
		},
	})

	logs, err := fixture.engine.Evaluate(ctx, documentEvent(nil))
	require.NoError(t, err)
	assert.Empty(t, logs)

	stored, err := fixture.persistence.ExecutionLogRepository().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEngine_EvaluateConditionsNotMetProducesNoLog(t *testing.T) {
	fixture := newEngineFixture(t, mocks.NewDirectory())
	ctx := context.Background()

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID:     "w1",
		Name:   "Published only",
		Status: models.WorkflowStatusActive,
		Trigger: models.Trigger{
			Entity: models.EntityDocument,
			Event:  models.EventStatusChanged,
		},
		ConditionGroup: models.ConditionGroup{
			Logic: models.LogicAnd,
			Conditions: []models.Condition{
				{Field: "status", Operator: models.OperatorEquals, Value: "published"},
			},
		},
	})

	logs, err := fixture.engine.Evaluate(ctx, documentEvent(map[string]any{"status": "draft"}))
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestEngine_EvaluateExecutesMatchingWorkflow(t *testing.T) {
	directory := mocks.NewDirectory(protocol.User{ID: "u1", Role: "Quality Manager"})
	fixture := newEngineFixture(t, directory)
	ctx := context.Background()

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID:     "w1",
		Name:   "Publish alert",
		Status: models.WorkflowStatusActive,
		Trigger: models.Trigger{
			Entity: models.EntityDocument,
			Event:  models.EventStatusChanged,
			FieldFilters: []models.Condition{
				{Field: "category", Operator: models.OperatorEquals, Value: "sop"},
			},
		},
		ConditionGroup: models.ConditionGroup{
			Logic: models.LogicAnd,
			Conditions: []models.Condition{
				{Field: "status", Operator: models.OperatorEquals, Value: "published"},
			},
		},
		Actions: []models.Action{
			{
				ID:    "a2",
				Type:  models.ActionAddComment,
				Order: 2,
				Config: map[string]any{
					"comment": "Published: {{entity.title}}",
				},
			},
			{
				ID:    "a1",
				Type:  models.ActionSendNotification,
				Order: 1,
				Config: map[string]any{
					"title":           "Published",
					"message":         "{{entity.title}} is live",
					"priority":        "high",
					"recipient_roles": []any{"Quality Manager"},
				},
			},
		},
	})

	logs, err := fixture.engine.Evaluate(ctx, documentEvent(map[string]any{
		"title":    "SOP-1",
		"status":   "published",
		"category": "sop",
	}))
	require.NoError(t, err)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "w1", entry.WorkflowID)
	assert.Equal(t, "document.status_changed", entry.TriggeredBy)
	assert.Equal(t, "doc-1", entry.TriggerEntityID)
	assert.Equal(t, models.ExecutionStatusCompleted, entry.Status)
	require.NotNil(t, entry.CompletedAt)

	// Actions run in ascending order regardless of definition order.
	require.Len(t, entry.ActionResults, 2)
	assert.Equal(t, "a1", entry.ActionResults[0].ActionID)
	assert.Equal(t, "Notified 1 user(s)", entry.ActionResults[0].Message)
	assert.Equal(t, "a2", entry.ActionResults[1].ActionID)
	assert.Equal(t, "Comment added: Published: SOP-1", entry.ActionResults[1].Message)

	received := fixture.notifier.Notifications()
	require.Len(t, received, 1)
	assert.Equal(t, "SOP-1 is live", received[0].Message)

	// Execution stats are engine-owned and updated on every run.
	stored, err := fixture.persistence.WorkflowRepository().GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ExecutionCount)
	require.NotNil(t, stored.LastExecutedAt)

	// The log entry is persisted as well as returned.
	history, err := fixture.persistence.ExecutionLogRepository().List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entry.ID, history[0].ID)

	require.Len(t, fixture.publisher.published, 1)
	assert.Equal(t, events.ExecutionCompletedEvent, fixture.publisher.published[0].GetType())
}

func TestEngine_FailedActionMarksExecutionFailed(t *testing.T) {
	directory := mocks.NewDirectory()
	directory.Err = assert.AnError
	fixture := newEngineFixture(t, directory)
	ctx := context.Background()

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID:     "w1",
		Name:   "Escalation",
		Status: models.WorkflowStatusActive,
		Trigger: models.Trigger{
			Entity: models.EntityIncident,
			Event:  models.EventCreated,
		},
		Actions: []models.Action{
			{ID: "a1", Type: models.ActionAddComment, Order: 1, Config: map[string]any{"comment": "noted"}},
			{ID: "a2", Type: models.ActionEscalate, Order: 2, Config: map[string]any{"message": "help"}},
		},
	})

	event := events.EntityEvent{
		BaseEvent: events.NewBaseEvent(events.EntityEventReceived),
		Entity:    models.EntityIncident,
		Event:     models.EventCreated,
		EntityID:  "inc-1",
	}

	logs, err := fixture.engine.Evaluate(ctx, event)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, models.ExecutionStatusFailed, entry.Status)
	assert.Equal(t, models.ExecutionStatusCompleted, entry.ActionResults[0].Status)
	assert.Equal(t, models.ExecutionStatusFailed, entry.ActionResults[1].Status)

	require.Len(t, fixture.publisher.published, 1)
	assert.Equal(t, events.ExecutionFailedEvent, fixture.publisher.published[0].GetType())
}

func TestEngine_SkippedActionsDoNotFailExecution(t *testing.T) {
	fixture := newEngineFixture(t, mocks.NewDirectory())
	ctx := context.Background()

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID:     "w1",
		Name:   "Mixed",
		Status: models.WorkflowStatusActive,
		Trigger: models.Trigger{
			Entity: models.EntityTask,
			Event:  models.EventOverdue,
		},
		Actions: []models.Action{
			{ID: "a1", Type: models.ActionAddComment, Order: 1, DelayMinutes: 10, Config: map[string]any{"comment": "later"}},
			{ID: "a2", Type: models.ActionAIGenerate, Order: 2},
			{ID: "a3", Type: models.ActionAddComment, Order: 3, Config: map[string]any{"comment": "now"}},
		},
	})

	event := events.EntityEvent{
		BaseEvent: events.NewBaseEvent(events.EntityEventReceived),
		Entity:    models.EntityTask,
		Event:     models.EventOverdue,
		EntityID:  "t-1",
	}

	logs, err := fixture.engine.Evaluate(ctx, event)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, models.ExecutionStatusCompleted, entry.Status)
	assert.Equal(t, models.ExecutionStatusSkipped, entry.ActionResults[0].Status)
	assert.Equal(t, models.ExecutionStatusSkipped, entry.ActionResults[1].Status)
	assert.Equal(t, models.ExecutionStatusCompleted, entry.ActionResults[2].Status)
}

func TestEngine_MultipleWorkflowsAllRun(t *testing.T) {
	fixture := newEngineFixture(t, mocks.NewDirectory())
	ctx := context.Background()

	trigger := models.Trigger{Entity: models.EntityDocument, Event: models.EventStatusChanged}

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID: "w1", Name: "First", Status: models.WorkflowStatusActive, Trigger: trigger,
		Actions: []models.Action{{ID: "a1", Type: models.ActionAddComment, Config: map[string]any{"comment": "one"}}},
	})
	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID: "w2", Name: "Second", Status: models.WorkflowStatusActive, Trigger: trigger,
		Actions: []models.Action{{ID: "a1", Type: models.ActionAddComment, Config: map[string]any{"comment": "two"}}},
	})
	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID: "w3", Name: "Paused", Status: models.WorkflowStatusPaused, Trigger: trigger,
	})

	logs, err := fixture.engine.Evaluate(ctx, documentEvent(nil))
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "w1", logs[0].WorkflowID)
	assert.Equal(t, "w2", logs[1].WorkflowID)
}

func TestEngine_OrConditions(t *testing.T) {
	fixture := newEngineFixture(t, mocks.NewDirectory())
	ctx := context.Background()

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID:     "w1",
		Name:   "Either",
		Status: models.WorkflowStatusActive,
		Trigger: models.Trigger{
			Entity: models.EntityDocument,
			Event:  models.EventStatusChanged,
		},
		ConditionGroup: models.ConditionGroup{
			Logic: models.LogicOr,
			Conditions: []models.Condition{
				{Field: "status", Operator: models.OperatorEquals, Value: "published"},
				{Field: "priority", Operator: models.OperatorEquals, Value: "critical"},
			},
		},
		Actions: []models.Action{{ID: "a1", Type: models.ActionAddComment, Config: map[string]any{"comment": "hit"}}},
	})

	logs, err := fixture.engine.Evaluate(ctx, documentEvent(map[string]any{
		"status":   "draft",
		"priority": "critical",
	}))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

type crashingAction struct{}

func (crashingAction) Execute(context.Context, protocol.EntityContext, *slog.Logger) (string, error) {
	panic("broken action")
}

type crashingFactory struct{}

func (crashingFactory) Create(map[string]any) (protocol.Action, error) { return crashingAction{}, nil }

func (crashingFactory) ID() string { return "crash" }

func (crashingFactory) Schema() map[string]any { return map[string]any{"type": "object"} }

func TestEngine_PanicInOneWorkflowDoesNotStopOthers(t *testing.T) {
	fixture := newEngineFixture(t, mocks.NewDirectory())
	fixture.registry.RegisterAction(crashingFactory{})
	ctx := context.Background()

	trigger := models.Trigger{Entity: models.EntityDocument, Event: models.EventStatusChanged}

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID: "w1", Name: "Broken", Status: models.WorkflowStatusActive, Trigger: trigger,
		Actions: []models.Action{{ID: "a1", Type: models.ActionType("crash")}},
	})
	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID: "w2", Name: "Healthy", Status: models.WorkflowStatusActive, Trigger: trigger,
		Actions: []models.Action{{ID: "a1", Type: models.ActionAddComment, Config: map[string]any{"comment": "still here"}}},
	})

	logs, err := fixture.engine.Evaluate(ctx, documentEvent(nil))
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "w1", logs[0].WorkflowID)
	assert.Equal(t, models.ExecutionStatusFailed, logs[0].Status)
	assert.Contains(t, logs[0].Error, "panicked")
	require.NotNil(t, logs[0].CompletedAt)

	assert.Equal(t, "w2", logs[1].WorkflowID)
	assert.Equal(t, models.ExecutionStatusCompleted, logs[1].Status)

	// Both runs are persisted, the panicked one included.
	history, err := fixture.persistence.ExecutionLogRepository().List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)

	require.Len(t, fixture.publisher.published, 2)
	assert.Equal(t, events.ExecutionFailedEvent, fixture.publisher.published[0].GetType())
	assert.Equal(t, events.ExecutionCompletedEvent, fixture.publisher.published[1].GetType())
}

func TestEngine_ConcurrentEvaluateKeepsExecutionCount(t *testing.T) {
	fixture := newEngineFixture(t, mocks.NewDirectory())
	ctx := context.Background()

	fixture.saveWorkflow(t, &models.WorkflowDefinition{
		ID:     "w1",
		Name:   "Counter",
		Status: models.WorkflowStatusActive,
		Trigger: models.Trigger{
			Entity: models.EntityDocument,
			Event:  models.EventStatusChanged,
		},
		Actions: []models.Action{{ID: "a1", Type: models.ActionAddComment, Config: map[string]any{"comment": "tick"}}},
	})

	const runs = 200

	var wg sync.WaitGroup

	errs := make(chan error, runs)

	for range runs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := fixture.engine.Evaluate(ctx, documentEvent(nil))
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Every run lands its increment, no lost updates under concurrency.
	stored, err := fixture.persistence.WorkflowRepository().GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, runs, stored.ExecutionCount)
	require.NotNil(t, stored.LastExecutedAt)
}

package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowRepository_SaveAndGet(t *testing.T) {
	repo := NewWorkflowRepository()

	workflow := &models.WorkflowDefinition{
		ID:     "wf-1",
		Name:   "Test Workflow",
		Status: models.WorkflowStatusActive,
	}

	err := repo.Save(t.Context(), workflow)
	require.NoError(t, err)

	fetched, err := repo.GetByID(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Workflow", fetched.Name)

	// Mutating the returned copy must not leak into the store.
	fetched.Name = "mutated"

	again, err := repo.GetByID(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Workflow", again.Name)
}

func TestWorkflowRepository_GetByID_NotFound(t *testing.T) {
	repo := NewWorkflowRepository()

	_, err := repo.GetByID(t.Context(), "absent")
	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowRepository_ListActive(t *testing.T) {
	repo := NewWorkflowRepository()

	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-1", Status: models.WorkflowStatusActive}))
	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-2", Status: models.WorkflowStatusPaused}))
	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-3", Status: models.WorkflowStatusActive}))

	active, err := repo.ListActive(t.Context())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "wf-1", active[0].ID)
	assert.Equal(t, "wf-3", active[1].ID)
}

func TestWorkflowRepository_SaveReplacesInPlace(t *testing.T) {
	repo := NewWorkflowRepository()

	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-1", Name: "first"}))
	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-2", Name: "second"}))
	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-1", Name: "updated"}))

	all, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "updated", all[0].Name)
}

func TestWorkflowRepository_Delete(t *testing.T) {
	repo := NewWorkflowRepository()

	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-1"}))
	require.NoError(t, repo.Delete(t.Context(), "wf-1"))

	_, err := repo.GetByID(t.Context(), "wf-1")
	assert.True(t, persistence.IsWorkflowNotFound(err))

	err = repo.Delete(t.Context(), "wf-1")
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowRepository_IncrementExecutionStats(t *testing.T) {
	repo := NewWorkflowRepository()

	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-1", Status: models.WorkflowStatusActive}))

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.IncrementExecutionStats(t.Context(), "wf-1", at))
	require.NoError(t, repo.IncrementExecutionStats(t.Context(), "wf-1", at.Add(time.Minute)))

	fetched, err := repo.GetByID(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.ExecutionCount)
	require.NotNil(t, fetched.LastExecutedAt)
	assert.Equal(t, at.Add(time.Minute), *fetched.LastExecutedAt)

	err = repo.IncrementExecutionStats(t.Context(), "absent", at)
	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowRepository_ConcurrentIncrements(t *testing.T) {
	repo := NewWorkflowRepository()

	require.NoError(t, repo.Save(t.Context(), &models.WorkflowDefinition{ID: "wf-1", Status: models.WorkflowStatusActive}))

	const increments = 100

	var wg sync.WaitGroup

	for range increments {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = repo.IncrementExecutionStats(t.Context(), "wf-1", time.Now().UTC())
		}()
	}

	wg.Wait()

	fetched, err := repo.GetByID(t.Context(), "wf-1")
	require.NoError(t, err)
	assert.Equal(t, increments, fetched.ExecutionCount)
}

func TestExecutionLogRepository_MostRecentFirst(t *testing.T) {
	repo := NewExecutionLogRepository(persistence.MaxExecutionLogEntries)

	require.NoError(t, repo.Append(t.Context(), &models.ExecutionLog{ID: "log-1"}))
	require.NoError(t, repo.Append(t.Context(), &models.ExecutionLog{ID: "log-2"}))

	entries, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "log-2", entries[0].ID)
	assert.Equal(t, "log-1", entries[1].ID)
}

func TestExecutionLogRepository_CapEviction(t *testing.T) {
	repo := NewExecutionLogRepository(persistence.MaxExecutionLogEntries)

	for i := range persistence.MaxExecutionLogEntries + 1 {
		entry := &models.ExecutionLog{ID: fmt.Sprintf("log-%d", i)}
		require.NoError(t, repo.Append(t.Context(), entry))
	}

	entries, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, entries, persistence.MaxExecutionLogEntries)

	// The newest entry survives at the head; the very first insertion is
	// the one evicted.
	assert.Equal(t, fmt.Sprintf("log-%d", persistence.MaxExecutionLogEntries), entries[0].ID)
	assert.Equal(t, "log-1", entries[len(entries)-1].ID)
}

func TestExecutionLogRepository_ListByWorkflow(t *testing.T) {
	repo := NewExecutionLogRepository(persistence.MaxExecutionLogEntries)

	require.NoError(t, repo.Append(t.Context(), &models.ExecutionLog{ID: "log-1", WorkflowID: "wf-1"}))
	require.NoError(t, repo.Append(t.Context(), &models.ExecutionLog{ID: "log-2", WorkflowID: "wf-2"}))
	require.NoError(t, repo.Append(t.Context(), &models.ExecutionLog{ID: "log-3", WorkflowID: "wf-1"}))

	entries, err := repo.ListByWorkflow(t.Context(), "wf-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "log-3", entries[0].ID)
}

func TestExecutionLogRepository_Clear(t *testing.T) {
	repo := NewExecutionLogRepository(persistence.MaxExecutionLogEntries)

	require.NoError(t, repo.Append(t.Context(), &models.ExecutionLog{ID: "log-1"}))
	require.NoError(t, repo.Clear(t.Context()))

	entries, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPersistence_HealthCheck(t *testing.T) {
	p := NewPersistence()

	assert.NoError(t, p.HealthCheck(t.Context()))
	assert.NoError(t, p.Close(t.Context()))
}

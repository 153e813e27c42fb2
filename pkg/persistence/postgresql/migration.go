package postgresql

// migrations returns the schema migrations keyed by version. Triggers,
// condition groups, and action lists are stored as JSONB documents: the
// engine always loads whole definitions, so relational decomposition would
// buy nothing here.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS workflows (
				id               TEXT PRIMARY KEY,
				name             TEXT NOT NULL,
				description      TEXT NOT NULL DEFAULT '',
				status           TEXT NOT NULL,
				trigger          JSONB NOT NULL,
				condition_group  JSONB NOT NULL,
				actions          JSONB NOT NULL,
				category         TEXT NOT NULL DEFAULT '',
				is_template      BOOLEAN NOT NULL DEFAULT FALSE,
				created_by       TEXT NOT NULL DEFAULT '',
				created_at       TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at       TIMESTAMP WITH TIME ZONE NOT NULL,
				execution_count  INTEGER NOT NULL DEFAULT 0,
				last_executed_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX IF NOT EXISTS idx_workflows_status ON workflows (status);

			CREATE TABLE IF NOT EXISTS execution_logs (
				id                TEXT PRIMARY KEY,
				workflow_id       TEXT NOT NULL,
				workflow_name     TEXT NOT NULL,
				triggered_by      TEXT NOT NULL,
				trigger_entity_id TEXT NOT NULL,
				started_at        TIMESTAMP WITH TIME ZONE NOT NULL,
				completed_at      TIMESTAMP WITH TIME ZONE,
				status            TEXT NOT NULL,
				action_results    JSONB NOT NULL,
				error             TEXT NOT NULL DEFAULT '',
				inserted_at       TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_execution_logs_workflow_id ON execution_logs (workflow_id);
			CREATE INDEX IF NOT EXISTS idx_execution_logs_inserted_at ON execution_logs (inserted_at DESC);
		`,
	}
}

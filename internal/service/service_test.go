package service

import (
	"context"
	"testing"

	"github.com/docuchat/relay/internal/adapter/foundry"
	"github.com/docuchat/relay/internal/adapter/openai"
	"github.com/docuchat/relay/internal/config"
	"github.com/docuchat/relay/internal/store"
	"github.com/docuchat/relay/policy"
	"github.com/docuchat/relay/tests/helpers"
)

// newTestService wires a service around an in-memory store, the given mock
// clients, and the default admission policy. agent may be nil to exercise
// the not-configured path.
func newTestService(t *testing.T, mock openai.API, agent foundry.AgentAPI) (*Service, *store.SQLiteStore) {
	t.Helper()

	db := helpers.NewTestSQLiteStore(t)

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	cfg := &config.Config{
		UploadDir: t.TempDir(),
	}

	return New(db, mock, agent, engine, cfg), db
}

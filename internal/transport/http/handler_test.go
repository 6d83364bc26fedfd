package http

import (
	"context"
	"testing"

	"github.com/docuchat/relay/internal/adapter/openai"
	"github.com/docuchat/relay/internal/config"
	"github.com/docuchat/relay/internal/service"
	"github.com/docuchat/relay/internal/store"
	"github.com/docuchat/relay/policy"
	"github.com/docuchat/relay/tests/helpers"
)

type testFixture struct {
	handler *Handler
	store   *store.SQLiteStore
	mock    *openai.MockClient
}

func newTestHandler(t *testing.T) *testFixture {
	t.Helper()

	db := helpers.NewTestSQLiteStore(t)
	mock := openai.NewMockClient()

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	cfg := &config.Config{UploadDir: t.TempDir()}
	svc := service.New(db, mock, nil, engine, cfg)

	return &testFixture{
		handler: NewHandler(svc, ""),
		store:   db,
		mock:    mock,
	}
}

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gigaverse-labs/advisor/internal/storage/postgres"
	"github.com/gigaverse-labs/advisor/internal/testutil"
)

func TestNewPool_SessionSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	core, logs := observer.New(zap.DebugLevel)
	pool, err := postgres.NewPool(ctx, pc.Config, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	var appName, timeout string
	require.NoError(t, pool.DB().QueryRow(ctx, `SHOW application_name`).Scan(&appName))
	require.NoError(t, pool.DB().QueryRow(ctx, `SHOW statement_timeout`).Scan(&timeout))
	assert.Equal(t, postgres.ApplicationName, appName)
	assert.Equal(t, "2s", timeout)
	assert.Equal(t, pc.Config.MaxConns, pool.DB().Config().MaxConns)
	assert.GreaterOrEqual(t, logs.FilterMessage("audit connection opened").Len(), 1)

	require.NoError(t, pool.Health(ctx, time.Second))
	assert.GreaterOrEqual(t, logs.FilterMessage("audit pool healthy").Len(), 1)
}

func TestPool_EnsureSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	err := pc.Pool.EnsureSchema(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, postgres.ErrSchemaMissing))

	pc.ApplyMigrations(t)
	assert.NoError(t, pc.Pool.EnsureSchema(ctx))
}

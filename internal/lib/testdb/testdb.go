// Package testdb starts a disposable PostgreSQL container with the employees schema applied.
// It is meant for integration tests only and skips them under `go test -short`.
package testdb

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const image = "postgres:16-alpine"

// Start runs a PostgreSQL container, applies the migrations and returns a pool connected to it.
// The container and the pool are released when the test finishes.
func Start(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("hestia"),
		postgres.WithUsername("hestia"),
		postgres.WithPassword("hestia"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := repository.NewDatabaseFromURL(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, repository.Migrate(pool, MigrationsDir()))

	return pool
}

// MigrationsDir returns the absolute path of the repository's migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)

	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

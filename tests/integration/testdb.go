// Package integration runs the ledger against real PostgreSQL and Redis
// instances started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated PostgreSQL database in a throwaway container
type TestDB struct {
	DB        *gorm.DB
	SQLDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts a PostgreSQL container, applies the embedded migrations
// and terminates the container when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	tdb := &TestDB{Container: container, t: t}
	t.Cleanup(tdb.Close)

	tdb.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	tdb.DB, tdb.SQLDB = openPool(t, tdb.DSN)

	m, err := migration.New(tdb.SQLDB, migration.Source{}, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up(), "apply migrations")
	return tdb
}

// Close closes the connection pool and terminates the container
func (tdb *TestDB) Close() {
	if tdb.SQLDB != nil {
		_ = tdb.SQLDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("terminate container: %v", err)
		}
	}
}

// CleanTables empties the ledger between subtests
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	require.NoError(tdb.t, tdb.DB.Exec("TRUNCATE TABLE stock_movements, inventory_items, inventory_locations CASCADE").Error)
}

// openPool sizes the pool so the concurrency tests really contend on row
// locks instead of queueing for connections.
func openPool(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	require.NoError(t, err, "connect to postgres container")

	pool, err := db.DB()
	require.NoError(t, err)
	pool.SetMaxOpenConns(20)
	pool.SetMaxIdleConns(5)
	pool.SetConnMaxLifetime(5 * time.Minute)
	return db, pool
}

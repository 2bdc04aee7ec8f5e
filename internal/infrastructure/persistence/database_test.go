package persistence

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked PostgreSQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB, driver: config.DriverPostgres}, mock, mockDB
}

func TestDialector(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		d, err := Dialector(&config.DatabaseConfig{Driver: config.DriverPostgres, Host: "localhost", Port: 5432})
		require.NoError(t, err)
		assert.Equal(t, "postgres", d.Name())
	})

	t.Run("empty driver falls back to postgres", func(t *testing.T) {
		d, err := Dialector(&config.DatabaseConfig{})
		require.NoError(t, err)
		assert.Equal(t, "postgres", d.Name())
	})

	t.Run("sqlite", func(t *testing.T) {
		d, err := Dialector(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", d.Name())
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Dialector(&config.DatabaseConfig{Driver: "mysql"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestSQLXDriverName(t *testing.T) {
	assert.Equal(t, "sqlite3", SQLXDriverName(config.DriverSQLite))
	assert.Equal(t, "postgres", SQLXDriverName(config.DriverPostgres))
	assert.Equal(t, "postgres", SQLXDriverName(""))
}

func TestNewDatabase_SQLite(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:database_test?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver())
	require.NoError(t, db.Ping())
	require.NoError(t, db.AutoMigrate())

	for _, table := range []string{"inventory_locations", "inventory_items", "stock_movements"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)

	sqlxDB, err := db.SQLX()
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", sqlxDB.DriverName())
}

func TestDatabase_Driver(t *testing.T) {
	db := &Database{}
	assert.Equal(t, config.DriverPostgres, db.Driver())
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("ping succeeds", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectPing()
		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
		require.NoError(t, err)

		db := &Database{DB: gormDB}
		require.NoError(t, db.Ping())
	})
}

func TestDatabase_SQLX_Postgres(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	sqlxDB, err := db.SQLX()
	require.NoError(t, err)
	assert.Equal(t, "postgres", sqlxDB.DriverName())
	assert.Equal(t, "SELECT 1 WHERE a = $1", sqlxDB.Rebind("SELECT 1 WHERE a = ?"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInventoryItemRepository_SaveWithLock_Postgres(t *testing.T) {
	t.Run("issues a version-checked update", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		item := newTestItem(t)
		item.Quantity = 5

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewGormInventoryItemRepository(db.DB)
		require.NoError(t, repo.SaveWithLock(t.Context(), item))
		assert.Equal(t, 2, item.Version)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected is a conflict", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		item := newTestItem(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "inventory_items" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewGormInventoryItemRepository(db.DB)
		err := repo.SaveWithLock(t.Context(), item)
		require.Error(t, err)
		assert.True(t, IsRetryable(err))
		assert.Equal(t, 1, item.Version)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

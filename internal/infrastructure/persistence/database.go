package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ledgerModels is the AutoMigrate set, in foreign key order
var ledgerModels = []any{
	&models.LocationModel{},
	&models.InventoryItemModel{},
	&models.StockMovementModel{},
}

// Database is the gorm handle plus the driver it was opened with
type Database struct {
	DB     *gorm.DB
	driver string
}

// NewDatabase opens cfg with gorm logging silenced
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithCustomLogger(cfg, logger.Default.LogMode(logger.Silent))
}

// NewDatabaseWithCustomLogger opens cfg, sizes the pool and pings once.
func NewDatabaseWithCustomLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	d := &Database{DB: db, driver: cfg.Driver}
	pool, err := d.pool()
	if err != nil {
		return nil, err
	}
	configurePool(pool, cfg)
	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return d, nil
}

func configurePool(pool *sql.DB, cfg *config.DatabaseConfig) {
	switch cfg.Driver {
	case config.DriverSQLite:
		// one writer at a time; also keeps a ":memory:" database from vanishing
		pool.SetMaxOpenConns(1)
	default:
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

// Dialector picks the gorm driver; an empty driver means postgres.
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func (d *Database) Driver() string {
	if d.driver == "" {
		return config.DriverPostgres
	}
	return d.driver
}

func (d *Database) pool() (*sql.DB, error) {
	pool, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	return pool, nil
}

// SQLX shares the gorm pool with the hand-written stats queries
func (d *Database) SQLX() (*sqlx.DB, error) {
	pool, err := d.pool()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(pool, SQLXDriverName(d.Driver())), nil
}

// SQLXDriverName is the driver name sqlx keys its bind style on
func SQLXDriverName(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// AutoMigrate builds the schema from the models. Only SQLite relies on
// this; PostgreSQL gets its schema from the SQL migrations.
func (d *Database) AutoMigrate() error {
	return AutoMigrate(d.DB)
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(ledgerModels...)
}

func (d *Database) Close() error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	return pool.Close()
}

func (d *Database) Ping() error {
	pool, err := d.pool()
	if err != nil {
		return err
	}
	return pool.Ping()
}

// Stats reports connection pool usage
func (d *Database) Stats() (sql.DBStats, error) {
	pool, err := d.pool()
	if err != nil {
		return sql.DBStats{}, err
	}
	return pool.Stats(), nil
}

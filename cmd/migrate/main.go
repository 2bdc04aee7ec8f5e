// Command migrate manages the ledger's PostgreSQL schema.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/logger"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/migration"
	"github.com/minh261002/Shopee.vn-sub000/migrations"
	"go.uber.org/zap"
)

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "", "Migrations directory (default: migrations embedded in the binary)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if dir != "" {
		if dir, err = filepath.Abs(dir); err != nil {
			log.Fatal("Invalid migrations path", zap.Error(err))
		}
	}

	// create and list need no database
	switch command {
	case "create":
		if dir == "" {
			dir = "migrations"
		}
		if len(args) < 2 {
			log.Fatal("Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(dir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created", zap.String("up", mf.UpPath), zap.String("down", mf.DownPath))
		return

	case "list":
		var files fs.FS = migrations.FS
		if dir != "" {
			files = os.DirFS(dir)
		}
		names, err := migration.ListMigrations(files)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverSQLite {
		log.Fatal("SQL migrations target PostgreSQL; SQLite databases are created by the server on startup")
	}

	db, err := sql.Open("postgres", cfg.Database.MigrationURL())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database", zap.Error(err))
	}

	m, err := migration.New(db, migration.Source{Dir: dir}, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	if err := run(m, command, args[1:], log); err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func run(m *migration.Migrator, command string, args []string, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()
	case "down":
		if len(args) == 0 || (args[0] != "-confirm" && args[0] != "--confirm") {
			return fmt.Errorf("down drops every ledger table; rerun as 'migrate down -confirm'")
		}
		return m.Down()
	case "step":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return m.GoTo(uint(n))
	case "force":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Force(n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func intArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing numeric argument")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Inventory ledger schema migrations

Usage:
  migrate [-path dir] [-log-level level] <command> [arguments]

Commands:
  up                     Apply all pending migrations
  down -confirm          Roll back every migration
  step <n>               Apply n migrations (negative rolls back)
  goto <version>         Migrate to a specific version
  version                Print the applied version
  force <version>        Record a version without running it (clears a dirty state)
  create <name> [desc]   Write an empty up/down pair into -path (default ./migrations)
  list                   List available migrations

Database settings come from config.toml, .env and INV_* environment variables.
`)
}

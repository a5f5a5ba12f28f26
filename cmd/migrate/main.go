package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	appidentity "github.com/koperasi/backend/internal/application/identity"
	"github.com/koperasi/backend/internal/infrastructure/config"
	"github.com/koperasi/backend/internal/infrastructure/logger"
	"github.com/koperasi/backend/internal/infrastructure/migration"
	"github.com/koperasi/backend/internal/infrastructure/persistence"
	"github.com/koperasi/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command, args := args[0], args[1:]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if command == "create" {
		createMigration(log, migrationsPath, args)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "create-user" {
		createUser(log, cfg, args)
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if migrationsPath != "" {
		abs, err := filepath.Abs(migrationsPath)
		if err != nil {
			log.Fatal("Invalid migrations path", zap.Error(err))
		}
		m, err = migration.NewFromDir(db, abs, log)
		if err != nil {
			log.Fatal("Failed to create migrator", zap.Error(err))
		}
	} else {
		m, err = migration.NewFromFS(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to create migrator", zap.Error(err))
		}
	}
	defer func() { _ = m.Close() }()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		steps := 0
		if len(args) > 0 {
			steps = mustAtoi(log, args[0], "step count")
		}
		err = m.Down(steps)
	case "goto":
		requireArg(log, args, "migrate goto <version>")
		err = m.GoTo(uint(mustAtoi(log, args[0], "version")))
	case "force":
		requireArg(log, args, "migrate force <version>")
		err = m.Force(mustAtoi(log, args[0], "version"))
	case "version":
		version, dirty, verr := m.Version()
		if verr == nil {
			log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		err = verr
	case "list":
		names, lerr := migration.ListMigrations(migrations.FS)
		for _, name := range names {
			fmt.Println("  -", name)
		}
		err = lerr
	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func createMigration(log *zap.Logger, dir string, args []string) {
	requireArg(log, args, "migrate create <name> [description]")
	if dir == "" {
		dir = "migrations"
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}
	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
}

// createUser bootstraps an operator account, typically the first ADMIN
func createUser(log *zap.Logger, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	var req appidentity.CreateUserRequest
	fs.StringVar(&req.Username, "username", "", "Login name")
	fs.StringVar(&req.Password, "password", "", "Password (8-72 characters)")
	fs.StringVar(&req.Name, "name", "", "Display name")
	fs.StringVar(&req.Role, "role", "ADMIN", "ADMIN, CASHIER or PURCHASING")
	_ = fs.Parse(args)
	if req.Username == "" || req.Password == "" {
		log.Fatal("Usage: migrate create-user -username <u> -password <p> [-name <n>] [-role ADMIN]")
	}
	if req.Name == "" {
		req.Name = req.Username
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormlogger.Warn)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := appidentity.NewUserService(persistence.NewGormUserRepository(db.DB), log)
	info, err := users.CreateUser(ctx, req)
	if err != nil {
		log.Fatal("Failed to create user", zap.Error(err))
	}
	log.Info("User ready",
		zap.String("id", info.ID.String()),
		zap.String("username", info.Username),
		zap.String("role", info.Role),
	)
}

func requireArg(log *zap.Logger, args []string, usage string) {
	if len(args) == 0 {
		log.Fatal("Missing argument", zap.String("usage", usage))
	}
}

func mustAtoi(log *zap.Logger, value, what string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Fatal("Invalid "+what, zap.String("value", value))
	}
	return n
}

func printUsage() {
	fmt.Println(`Koperasi database tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down [n]              Roll back n migrations (all when n is omitted)
  goto <version>        Migrate up or down to a version
  force <version>       Mark a version as applied (clears a dirty state)
  version               Show the applied version
  list                  List the embedded migrations
  create <name> [desc]  Create a new numbered migration pair in ./migrations
  create-user           Create or reactivate an operator account
                        -username <u> -password <p> [-name <n>] [-role ADMIN|CASHIER|PURCHASING]

Flags:
  -path string          Read migrations from a directory instead of the embedded set
  -log-level string     debug, info, warn or error (default info)

Configuration is read from config.toml and KOPERASI_* environment variables.`)
}

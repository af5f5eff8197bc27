// Package main implements the entry point for the TaskBrief API server,
// a task management service with optional LLM-generated task summaries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/briefops/taskbrief-api/internal/config"
	"github.com/briefops/taskbrief-api/internal/platform/logger"
	"github.com/briefops/taskbrief-api/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up|down|status) and exit")
	autoMigrate := flag.Bool("auto-migrate", false,
		"apply pending migrations before starting the server")
	flag.Parse()

	if err := run(*migrateCmd, *autoMigrate); err != nil {
		log.Fatalf("taskbrief-api: %v", err)
	}
}

// run loads configuration, wires the application and either executes a
// migration command or starts the HTTP server. Startup fails fast on bad
// configuration; a missing OpenAI API key only disables summaries.
func run(migrateCmd string, autoMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	appLogger.Info("configuration loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_url", redact.URL(cfg.Database.URL)),
		slog.Bool("summaries_enabled", cfg.LLM.APIKey != ""))

	if migrateCmd != "" {
		return runMigrations(cfg, migrateCmd)
	}

	if autoMigrate {
		if err := runMigrations(cfg, "up"); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	ctx := context.Background()

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.startHTTPServer(ctx, app.setupRouter())
}

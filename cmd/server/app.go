package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/briefops/taskbrief-api/internal/config"
	"github.com/briefops/taskbrief-api/internal/platform/openai"
	"github.com/briefops/taskbrief-api/internal/platform/postgres"
	"github.com/briefops/taskbrief-api/internal/service"
	"github.com/briefops/taskbrief-api/internal/store"
	"github.com/briefops/taskbrief-api/internal/summary"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore   store.TaskStore
	summarizer  summary.Summarizer
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the core dependencies (configuration, logger,
// database connection) that must be established first.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.summarizer = openai.NewClient(logger, cfg.LLM)
	if cfg.LLM.APIKey == "" {
		logger.Info("no OpenAI API key configured, task summaries disabled")
	} else {
		logger.Info("summarization client initialized",
			slog.String("model", cfg.LLM.Model))
	}

	var err error
	app.taskService, err = service.NewTaskService(db, app.taskStore, app.summarizer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection",
				slog.String("error", err.Error()))
		}
	}
}

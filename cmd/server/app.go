package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ideiatech/smartleader-api/internal/config"
	"github.com/ideiatech/smartleader-api/internal/oracle"
	"github.com/ideiatech/smartleader-api/internal/platform/gemini"
	"github.com/ideiatech/smartleader-api/internal/platform/postgres"
	"github.com/ideiatech/smartleader-api/internal/service/assignment"
	"github.com/ideiatech/smartleader-api/internal/service/auth"
	"github.com/ideiatech/smartleader-api/internal/service/wellbeing"
	"github.com/ideiatech/smartleader-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	personStore    store.PersonStore
	workItemStore  store.WorkItemStore
	wellbeingStore store.WellbeingStore
	txRunner       store.TxRunner

	// Service interfaces
	jwtService        auth.JWTService
	hasher            *auth.BcryptHasher
	generator         oracle.Generator
	assignmentService assignment.Service
	wellbeingService  wellbeing.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hasher
	app.hasher = auth.NewBcryptHasher()

	// Initialize stores
	app.personStore = postgres.NewPersonStore(db, logger)
	app.workItemStore = postgres.NewWorkItemStore(db, logger)
	app.wellbeingStore = postgres.NewWellbeingStore(db, logger)
	app.txRunner = &store.SQLTxRunner{DB: db}

	// Create the recommendation oracle client
	app.generator, err = gemini.NewGenerator(
		ctx,
		logger.With("component", "oracle_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recommendation oracle: %w", err)
	}
	logger.Info("recommendation oracle initialized")

	// Initialize domain services
	app.assignmentService = assignment.NewService(
		app.personStore,
		app.workItemStore,
		app.wellbeingStore,
		app.generator,
		app.txRunner,
		cfg.Engine.MaxItemsPerRebalance,
		logger,
	)
	app.wellbeingService = wellbeing.NewService(
		app.personStore,
		app.wellbeingStore,
		app.generator,
		logger,
	)

	logger.Info("application dependencies initialized")
	return app, nil
}

// cleanup releases resources held by the application. The database
// connection is owned and closed by main.
func (app *application) cleanup() {
	app.logger.Info("application cleanup complete")
}

// Package core wires the shared application components: configuration,
// database and the event hub.
package core

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/harakki/comics-server/internal/config"
	"github.com/harakki/comics-server/internal/db"
	"github.com/harakki/comics-server/internal/events"
)

// App holds the core components shared between the server and the CLI.
type App struct {
	config *config.Config
	db     *sql.DB
	hub    *events.Hub
}

// New sets up a new App instance. It loads configuration, opens the
// database and applies migrations.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.Init(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(database); err != nil {
		// We can't proceed without a valid schema.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	hub := events.NewHub()
	go hub.Run()

	log.Println("Core application setup complete.")
	return &App{config: cfg, db: database, hub: hub}, nil
}

// NewFromComponents assembles an App around already-initialized parts.
// Tests use it to inject an in-memory database.
func NewFromComponents(cfg *config.Config, database *sql.DB, hub *events.Hub) *App {
	return &App{config: cfg, db: database, hub: hub}
}

func (a *App) Config() *config.Config { return a.config }
func (a *App) DB() *sql.DB           { return a.db }
func (a *App) Hub() *events.Hub      { return a.hub }

// Close releases the application's resources.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

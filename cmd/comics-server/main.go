package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/harakki/comics-server/internal/api"
	"github.com/harakki/comics-server/internal/auth"
	"github.com/harakki/comics-server/internal/core"
	"github.com/harakki/comics-server/internal/jobs"
	"github.com/harakki/comics-server/internal/media"
	"github.com/harakki/comics-server/internal/store"
)

func main() {
	// Initialize the core application components
	app, err := core.New()
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	if err := ensureAdminUser(store.New(app.DB())); err != nil {
		log.Fatalf("Failed to provision initial admin user: %v", err)
	}

	bucket, err := media.NewS3Bucket(context.Background(), app.Config())
	if err != nil {
		log.Fatalf("Failed to set up object storage client: %v", err)
	}

	// Setup the API server
	server := api.NewServer(app, bucket)

	// Start background maintenance
	jobs.Start(app.Config(), server.MediaService())

	addr := fmt.Sprintf(":%d", app.Config().Port)
	log.Printf("Starting web server on %s", addr)

	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// ensureAdminUser creates a default admin account on first run so the
// instance is reachable before any users exist. The password must be
// changed afterwards.
func ensureAdminUser(st *store.Store) error {
	count, err := st.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}
	if _, err := st.CreateUser("admin", hash, "admin"); err != nil {
		return err
	}
	log.Println("Created default 'admin' user with password 'admin'. Change it immediately.")
	return nil
}

// Shared test server setup, which simplifies all API tests.

package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/harakki/comics-server/internal/api"
	"github.com/harakki/comics-server/internal/config"
	"github.com/harakki/comics-server/internal/core"
	"github.com/harakki/comics-server/internal/events"
)

// FakeBucket is an in-memory stand-in for the object store. It records
// deletions so tests can assert on cleanup behavior.
type FakeBucket struct {
	mu      sync.Mutex
	Deleted []string
}

func (b *FakeBucket) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	return fmt.Sprintf("https://bucket.test/%s?sig=put", key), nil
}

func (b *FakeBucket) PresignGet(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("https://bucket.test/%s?sig=get", key), nil
}

func (b *FakeBucket) DeleteObjects(ctx context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Deleted = append(b.Deleted, keys...)
	return nil
}

// SetupTestApp builds an App around an in-memory database.
func SetupTestApp(t *testing.T) *core.App {
	t.Helper()
	database := SetupTestDB(t)

	cfg := &config.Config{}
	hub := events.NewHub()
	go hub.Run()

	return core.NewFromComponents(cfg, database, hub)
}

// SetupTestServer builds a full API server over an in-memory database
// and a fake bucket.
func SetupTestServer(t *testing.T) (*api.Server, *FakeBucket) {
	t.Helper()
	app := SetupTestApp(t)
	bucket := &FakeBucket{}
	return api.NewServer(app, bucket), bucket
}

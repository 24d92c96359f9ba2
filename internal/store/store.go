// To handle all database interactions. This is our
// data access layer, keeping SQL queries separate from business logic.

package store

import (
	"database/sql"
	"fmt"

	"github.com/harakki/comics-server/internal/errs"
)

// Per-entity sentinels. Each wraps the shared category error so handlers can
// match on errs.ErrNotFound without knowing the entity.
var (
	ErrTitleNotFound      = fmt.Errorf("title: %w", errs.ErrNotFound)
	ErrChapterNotFound    = fmt.Errorf("chapter: %w", errs.ErrNotFound)
	ErrTagNotFound        = fmt.Errorf("tag: %w", errs.ErrNotFound)
	ErrAuthorNotFound     = fmt.Errorf("author: %w", errs.ErrNotFound)
	ErrPublisherNotFound  = fmt.Errorf("publisher: %w", errs.ErrNotFound)
	ErrEntryNotFound      = fmt.Errorf("library entry: %w", errs.ErrNotFound)
	ErrCollectionNotFound = fmt.Errorf("collection: %w", errs.ErrNotFound)
	ErrMediaNotFound      = fmt.Errorf("media: %w", errs.ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user: %w", errs.ErrNotFound)
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

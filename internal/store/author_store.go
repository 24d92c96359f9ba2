package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/util"
)

// CreateAuthor inserts an author; the slug is derived from the name and
// must be unique.
func (s *Store) CreateAuthor(name, bio string) (*models.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("author name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	slug := util.Slugify(name)
	res, err := s.db.Exec("INSERT INTO authors (name, slug, bio) VALUES (?, ?, ?)", name, slug, nullStr(bio))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("author %q already exists: %w", name, errs.ErrConflict)
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return s.GetAuthorByID(id)
}

// GetAuthorByID retrieves a single author.
func (s *Store) GetAuthorByID(id int64) (*models.Author, error) {
	var a models.Author
	var bio sql.NullString
	err := s.db.QueryRow(`
		SELECT id, name, slug, bio, created_at, updated_at FROM authors WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.Slug, &bio, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAuthorNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Bio = bio.String
	return &a, nil
}

// ListAuthors returns all authors ordered by name.
func (s *Store) ListAuthors() ([]*models.Author, error) {
	rows, err := s.db.Query(`
		SELECT id, name, slug, bio, created_at, updated_at FROM authors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*models.Author
	for rows.Next() {
		var a models.Author
		var bio sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Slug, &bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Bio = bio.String
		authors = append(authors, &a)
	}
	return authors, rows.Err()
}

// UpdateAuthor changes an author's name and bio. The slug is kept
// stable so existing links survive renames.
func (s *Store) UpdateAuthor(id int64, name, bio string) (*models.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("author name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	res, err := s.db.Exec(`
		UPDATE authors SET name = ?, bio = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, nullStr(bio), id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res, ErrAuthorNotFound); err != nil {
		return nil, err
	}
	return s.GetAuthorByID(id)
}

// DeleteAuthor removes an author; title credits cascade.
func (s *Store) DeleteAuthor(id int64) error {
	res, err := s.db.Exec("DELETE FROM authors WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrAuthorNotFound)
}

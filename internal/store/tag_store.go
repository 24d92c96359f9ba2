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

// CreateTag inserts a tag with a slug derived from its name.
func (s *Store) CreateTag(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	slug := util.Slugify(name)
	res, err := s.db.Exec("INSERT INTO tags (name, slug) VALUES (?, ?)", name, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag %q already exists: %w", name, errs.ErrConflict)
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return &models.Tag{ID: id, Name: name, Slug: slug}, nil
}

// GetTagByID retrieves a single tag.
func (s *Store) GetTagByID(id int64) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.QueryRow("SELECT id, name, slug FROM tags WHERE id = ?", id).Scan(&tag.ID, &tag.Name, &tag.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTagNotFound
	}
	return &tag, err
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags() ([]*models.Tag, error) {
	rows, err := s.db.Query("SELECT id, name, slug FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

// GetTagsByIDs resolves a set of tag ids, failing when any is unknown.
func (s *Store) GetTagsByIDs(ids []int64) ([]*models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT id, name, slug FROM tags WHERE id IN (" + placeholders(len(ids)) + ")"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

// UpdateTag renames a tag; the slug is regenerated from the new name.
func (s *Store) UpdateTag(id int64, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tag name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	slug := util.Slugify(name)
	res, err := s.db.Exec("UPDATE tags SET name = ?, slug = ? WHERE id = ?", name, slug, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag %q already exists: %w", name, errs.ErrConflict)
		}
		return nil, err
	}
	if err := requireAffected(res, ErrTagNotFound); err != nil {
		return nil, err
	}
	return &models.Tag{ID: id, Name: name, Slug: slug}, nil
}

// DeleteTag removes a tag; title associations cascade.
func (s *Store) DeleteTag(id int64) error {
	res, err := s.db.Exec("DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrTagNotFound)
}

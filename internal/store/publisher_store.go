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

// CreatePublisher inserts a publisher with a slug derived from its name.
func (s *Store) CreatePublisher(name, countryCode string) (*models.Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("publisher name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	slug := util.Slugify(name)
	res, err := s.db.Exec(`
		INSERT INTO publishers (name, slug, country_code) VALUES (?, ?, ?)`,
		name, slug, nullStr(countryCode))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("publisher %q already exists: %w", name, errs.ErrConflict)
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return s.GetPublisherByID(id)
}

// GetPublisherByID retrieves a single publisher.
func (s *Store) GetPublisherByID(id int64) (*models.Publisher, error) {
	var p models.Publisher
	var cc sql.NullString
	err := s.db.QueryRow(`
		SELECT id, name, slug, country_code, created_at, updated_at
		FROM publishers WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Slug, &cc, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPublisherNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CountryCode = cc.String
	return &p, nil
}

// ListPublishers returns all publishers ordered by name.
func (s *Store) ListPublishers() ([]*models.Publisher, error) {
	rows, err := s.db.Query(`
		SELECT id, name, slug, country_code, created_at, updated_at
		FROM publishers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var publishers []*models.Publisher
	for rows.Next() {
		var p models.Publisher
		var cc sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &cc, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.CountryCode = cc.String
		publishers = append(publishers, &p)
	}
	return publishers, rows.Err()
}

// UpdatePublisher changes a publisher's name and country code. The slug
// stays stable across renames.
func (s *Store) UpdatePublisher(id int64, name, countryCode string) (*models.Publisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("publisher name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	res, err := s.db.Exec(`
		UPDATE publishers SET name = ?, country_code = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		name, nullStr(countryCode), id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("publisher %q already exists: %w", name, errs.ErrConflict)
		}
		return nil, err
	}
	if err := requireAffected(res, ErrPublisherNotFound); err != nil {
		return nil, err
	}
	return s.GetPublisherByID(id)
}

// DeletePublisher removes a publisher. A publisher still referenced by
// titles cannot be deleted.
func (s *Store) DeletePublisher(id int64) error {
	var refs int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM titles WHERE publisher_id = ?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("publisher is referenced by %d titles: %w", refs, errs.ErrConflict)
	}
	res, err := s.db.Exec("DELETE FROM publishers WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrPublisherNotFound)
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
)

const collectionCols = "id, author_id, name, description, is_public, share_token, created_at, updated_at"

// CreateCollection makes an empty named collection for a user.
// Collection names are unique per owner.
func (s *Store) CreateCollection(authorID int64, name, description string, isPublic bool) (*models.Collection, error) {
	now := time.Now()
	res, err := s.db.Exec(`
		INSERT INTO collections (author_id, name, description, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		authorID, name, nullStr(description), isPublic, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("collection %q already exists: %w", name, errs.ErrConflict)
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return s.GetCollectionByID(id)
}

// GetCollectionByID loads a collection with its title ids in insertion
// order.
func (s *Store) GetCollectionByID(id int64) (*models.Collection, error) {
	return s.getCollection("id = ?", id)
}

// GetCollectionByShareToken resolves a share token to its collection.
func (s *Store) GetCollectionByShareToken(token string) (*models.Collection, error) {
	return s.getCollection("share_token = ?", token)
}

func (s *Store) getCollection(where string, arg interface{}) (*models.Collection, error) {
	var c models.Collection
	var desc sql.NullString
	err := s.db.QueryRow("SELECT "+collectionCols+" FROM collections WHERE "+where, arg).
		Scan(&c.ID, &c.AuthorID, &c.Name, &desc, &c.IsPublic, &c.ShareToken, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Description = desc.String
	if err := s.loadCollectionTitles(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCollectionsByAuthor returns a user's collections, newest first.
func (s *Store) ListCollectionsByAuthor(authorID int64) ([]*models.Collection, error) {
	rows, err := s.db.Query(
		"SELECT "+collectionCols+" FROM collections WHERE author_id = ? ORDER BY updated_at DESC, id DESC",
		authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*models.Collection
	for rows.Next() {
		var c models.Collection
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.Name, &desc, &c.IsPublic, &c.ShareToken, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Description = desc.String
		collections = append(collections, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range collections {
		if err := s.loadCollectionTitles(c); err != nil {
			return nil, err
		}
	}
	return collections, nil
}

// UpdateCollection changes a collection's name, description and
// visibility.
func (s *Store) UpdateCollection(id int64, name, description string, isPublic bool) error {
	res, err := s.db.Exec(`
		UPDATE collections SET name = ?, description = ?, is_public = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		name, nullStr(description), isPublic, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("collection %q already exists: %w", name, errs.ErrConflict)
		}
		return err
	}
	return requireAffected(res, ErrCollectionNotFound)
}

// SetCollectionShareToken stores a new token, or clears it when nil.
func (s *Store) SetCollectionShareToken(id int64, token *string) error {
	res, err := s.db.Exec(`
		UPDATE collections SET share_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, token, id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrCollectionNotFound)
}

// AddCollectionTitle appends a title to a collection. Adding a title
// that is already present is a conflict.
func (s *Store) AddCollectionTitle(collectionID, titleID int64) error {
	_, err := s.db.Exec(`
		INSERT INTO collection_titles (collection_id, title_id, sort_order)
		VALUES (?, ?, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM collection_titles WHERE collection_id = ?))`,
		collectionID, titleID, collectionID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("title %d already in collection: %w", titleID, errs.ErrConflict)
		}
		return err
	}
	_, err = s.db.Exec("UPDATE collections SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", collectionID)
	return err
}

// RemoveCollectionTitle drops a title from a collection.
func (s *Store) RemoveCollectionTitle(collectionID, titleID int64) error {
	res, err := s.db.Exec(`
		DELETE FROM collection_titles WHERE collection_id = ? AND title_id = ?`,
		collectionID, titleID)
	if err != nil {
		return err
	}
	if err := requireAffected(res, ErrTitleNotFound); err != nil {
		return err
	}
	_, err = s.db.Exec("UPDATE collections SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", collectionID)
	return err
}

// DeleteCollection removes a collection and its memberships.
func (s *Store) DeleteCollection(id int64) error {
	res, err := s.db.Exec("DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrCollectionNotFound)
}

func (s *Store) loadCollectionTitles(c *models.Collection) error {
	rows, err := s.db.Query(`
		SELECT title_id FROM collection_titles WHERE collection_id = ? ORDER BY sort_order`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	c.TitleIDs = []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		c.TitleIDs = append(c.TitleIDs, id)
	}
	return rows.Err()
}

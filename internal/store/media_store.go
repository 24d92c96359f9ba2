package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harakki/comics-server/internal/models"
)

// CreateMedia registers a pending upload slot.
func (s *Store) CreateMedia(m *models.Media) error {
	_, err := s.db.Exec(`
		INSERT INTO media (id, object_key, original_filename, content_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ObjectKey, m.OriginalFilename, m.ContentType, string(m.Status), m.CreatedAt)
	return err
}

// GetMediaByID retrieves a media record.
func (s *Store) GetMediaByID(id string) (*models.Media, error) {
	var m models.Media
	var status string
	err := s.db.QueryRow(`
		SELECT id, object_key, original_filename, content_type, status, created_at
		FROM media WHERE id = ?`, id).
		Scan(&m.ID, &m.ObjectKey, &m.OriginalFilename, &m.ContentType, &status, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Status = models.MediaStatus(status)
	return &m, nil
}

// FixateMedia marks an upload as confirmed so the cleanup job leaves
// it alone.
func (s *Store) FixateMedia(id string) error {
	res, err := s.db.Exec("UPDATE media SET status = ? WHERE id = ?", string(models.MediaFixed), id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrMediaNotFound)
}

// ListStaleMedia returns pending uploads older than the cutoff. These
// are slots whose upload never completed.
func (s *Store) ListStaleMedia(cutoff time.Time) ([]*models.Media, error) {
	rows, err := s.db.Query(`
		SELECT id, object_key, original_filename, content_type, status, created_at
		FROM media WHERE status = ? AND created_at < ?`,
		string(models.MediaPending), cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stale []*models.Media
	for rows.Next() {
		var m models.Media
		var status string
		if err := rows.Scan(&m.ID, &m.ObjectKey, &m.OriginalFilename, &m.ContentType, &status, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Status = models.MediaStatus(status)
		stale = append(stale, &m)
	}
	return stale, rows.Err()
}

// DeleteMedia removes one media record.
func (s *Store) DeleteMedia(id string) error {
	res, err := s.db.Exec("DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrMediaNotFound)
}

// DeleteMediaBatch removes several records in one transaction.
func (s *Store) DeleteMediaBatch(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("DELETE FROM media WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, id := range ids {
		if _, err := stmt.Exec(id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

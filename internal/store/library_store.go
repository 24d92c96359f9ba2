package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
)

// AddLibraryEntry places a title on a user's shelf. A user can hold at
// most one entry per title.
func (s *Store) AddLibraryEntry(userID, titleID int64, status models.ReadingStatus) (*models.LibraryEntry, error) {
	now := time.Now()
	res, err := s.db.Exec(`
		INSERT INTO library_entries (user_id, title_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, titleID, string(status), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("title %d already in library: %w", titleID, errs.ErrConflict)
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	return &models.LibraryEntry{
		ID: id, UserID: userID, TitleID: titleID,
		Status: status, CreatedAt: now, UpdatedAt: now,
	}, nil
}

// GetLibraryEntry returns the user's entry for a title.
func (s *Store) GetLibraryEntry(userID, titleID int64) (*models.LibraryEntry, error) {
	var e models.LibraryEntry
	var status string
	err := s.db.QueryRow(`
		SELECT id, user_id, title_id, status, rating, created_at, updated_at
		FROM library_entries WHERE user_id = ? AND title_id = ?`,
		userID, titleID).
		Scan(&e.ID, &e.UserID, &e.TitleID, &status, &e.Rating, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Status = models.ReadingStatus(status)
	return &e, nil
}

// ListLibraryEntries returns all of a user's entries, optionally
// filtered to one reading status, newest first.
func (s *Store) ListLibraryEntries(userID int64, status *models.ReadingStatus) ([]*models.LibraryEntry, error) {
	query := `
		SELECT id, user_id, title_id, status, rating, created_at, updated_at
		FROM library_entries WHERE user_id = ?`
	args := []interface{}{userID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY updated_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LibraryEntry
	for rows.Next() {
		var e models.LibraryEntry
		var st string
		if err := rows.Scan(&e.ID, &e.UserID, &e.TitleID, &st, &e.Rating, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Status = models.ReadingStatus(st)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// UpdateLibraryEntry changes the reading status and/or rating of an
// existing entry.
func (s *Store) UpdateLibraryEntry(userID, titleID int64, status models.ReadingStatus, rating *int) (*models.LibraryEntry, error) {
	res, err := s.db.Exec(`
		UPDATE library_entries SET status = ?, rating = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND title_id = ?`,
		string(status), rating, userID, titleID)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res, ErrEntryNotFound); err != nil {
		return nil, err
	}
	return s.GetLibraryEntry(userID, titleID)
}

// RemoveLibraryEntry takes a title off the user's shelf.
func (s *Store) RemoveLibraryEntry(userID, titleID int64) error {
	res, err := s.db.Exec("DELETE FROM library_entries WHERE user_id = ? AND title_id = ?", userID, titleID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrEntryNotFound)
}

package store

import (
	"database/sql"
	"errors"

	"github.com/harakki/comics-server/internal/models"
)

// UpsertProgressRead marks a chapter read, pinning last_page to the chapter's
// final page. The write is a single conditional upsert so concurrent calls
// for the same (user, chapter) cannot lose updates.
func (s *Store) UpsertProgressRead(userID, titleID, chapterID int64, lastPage int) error {
	query := `
		INSERT INTO chapter_progress (user_id, title_id, chapter_id, read, last_page, updated_at)
		VALUES (?, ?, ?, 1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, chapter_id) DO UPDATE SET
			read = 1,
			last_page = excluded.last_page,
			updated_at = CURRENT_TIMESTAMP;
	`
	_, err := s.db.Exec(query, userID, titleID, chapterID, lastPage)
	return err
}

// UpsertProgressUnread records page progress without marking the chapter
// read. last_page only ever moves forward: a page regression (the user
// scrolling back) must not erase further-along progress, and the MAX is
// evaluated inside the upsert so the invariant holds under concurrent
// writes.
func (s *Store) UpsertProgressUnread(userID, titleID, chapterID int64, lastPage *int) error {
	query := `
		INSERT INTO chapter_progress (user_id, title_id, chapter_id, read, last_page, updated_at)
		VALUES (?, ?, ?, 0, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, chapter_id) DO UPDATE SET
			read = 0,
			last_page = CASE
				WHEN chapter_progress.last_page IS NULL AND excluded.last_page IS NULL THEN NULL
				ELSE MAX(COALESCE(chapter_progress.last_page, 0), COALESCE(excluded.last_page, 0))
			END,
			updated_at = CURRENT_TIMESTAMP;
	`
	_, err := s.db.Exec(query, userID, titleID, chapterID, lastPage)
	return err
}

// GetProgress returns the progress row for (user, chapter), or nil when the
// user has no recorded progress. Absence is a normal state, not an error.
func (s *Store) GetProgress(userID, chapterID int64) (*models.ChapterProgress, error) {
	var p models.ChapterProgress
	var lastPage sql.NullInt64
	err := s.db.QueryRow(`SELECT user_id, title_id, chapter_id, read, last_page, updated_at
		FROM chapter_progress WHERE user_id = ? AND chapter_id = ?`, userID, chapterID).Scan(
		&p.UserID, &p.TitleID, &p.ChapterID, &p.Read, &lastPage, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastPage.Valid {
		lp := int(lastPage.Int64)
		p.LastPage = &lp
	}
	return &p, nil
}

// GetProgressByTitle returns every progress row the user has for the title's
// chapters, keyed by chapter id. One query keeps next-chapter resolution on a
// single consistent snapshot.
func (s *Store) GetProgressByTitle(userID, titleID int64) (map[int64]*models.ChapterProgress, error) {
	rows, err := s.db.Query(`SELECT user_id, title_id, chapter_id, read, last_page, updated_at
		FROM chapter_progress WHERE user_id = ? AND title_id = ?`, userID, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make(map[int64]*models.ChapterProgress)
	for rows.Next() {
		var p models.ChapterProgress
		var lastPage sql.NullInt64
		if err := rows.Scan(&p.UserID, &p.TitleID, &p.ChapterID, &p.Read, &lastPage, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if lastPage.Valid {
			lp := int(lastPage.Int64)
			p.LastPage = &lp
		}
		progress[p.ChapterID] = &p
	}
	return progress, rows.Err()
}

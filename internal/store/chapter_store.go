package store

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/util"
)

const maxChapterPages = 500

func validatePageList(pageMediaIDs []string) error {
	if len(pageMediaIDs) > maxChapterPages {
		return fmt.Errorf("chapter has %d pages, limit is %d: %w", len(pageMediaIDs), maxChapterPages, errs.ErrInvalidRequest)
	}
	seen := make(map[string]bool, len(pageMediaIDs))
	for _, id := range pageMediaIDs {
		if seen[id] {
			return fmt.Errorf("media %s appears more than once in page list: %w", id, errs.ErrInvalidRequest)
		}
		seen[id] = true
	}
	return nil
}

// CreateChapter inserts a chapter and its pages in one transaction.
// pageMediaIDs define page order by position.
func (s *Store) CreateChapter(c *models.Chapter, pageMediaIDs []string) (*models.Chapter, error) {
	if err := validatePageList(pageMediaIDs); err != nil {
		return nil, err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(`INSERT INTO chapters (title_id, volume, display_number, name, page_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.TitleID, c.Volume, c.DisplayNumber, nullStr(c.Name), len(pageMediaIDs), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("chapter %q already exists for this title: %w", c.DisplayNumber, errs.ErrConflict)
		}
		return nil, err
	}
	c.ID, _ = res.LastInsertId()
	c.PageCount = len(pageMediaIDs)

	for i, mediaID := range pageMediaIDs {
		if _, err := tx.Exec("INSERT INTO chapter_pages (chapter_id, media_id, page_order) VALUES (?, ?, ?)",
			c.ID, mediaID, i); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

// GetChapterByID fetches a single chapter by its ID.
func (s *Store) GetChapterByID(id int64) (*models.Chapter, error) {
	var c models.Chapter
	var volume sql.NullInt64
	var name sql.NullString
	err := s.db.QueryRow(`SELECT id, title_id, volume, display_number, name, page_count, created_at, updated_at
		FROM chapters WHERE id = ?`, id).Scan(
		&c.ID, &c.TitleID, &volume, &c.DisplayNumber, &name, &c.PageCount, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChapterNotFound
	}
	if err != nil {
		return nil, err
	}
	if volume.Valid {
		v := int(volume.Int64)
		c.Volume = &v
	}
	c.Name = name.String
	return &c, nil
}

// ListChaptersByTitle returns every chapter of a title in canonical order:
// volume, then display number, then id.
func (s *Store) ListChaptersByTitle(titleID int64) ([]*models.Chapter, error) {
	rows, err := s.db.Query(`SELECT id, title_id, volume, display_number, name, page_count, created_at, updated_at
		FROM chapters WHERE title_id = ?`, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*models.Chapter
	for rows.Next() {
		var c models.Chapter
		var volume sql.NullInt64
		var name sql.NullString
		if err := rows.Scan(&c.ID, &c.TitleID, &volume, &c.DisplayNumber, &name, &c.PageCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if volume.Valid {
			v := int(volume.Int64)
			c.Volume = &v
		}
		c.Name = name.String
		chapters = append(chapters, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Display numbers mix numeric and free-form tokens, so ordering happens
	// here rather than in SQL.
	slices.SortFunc(chapters, func(a, b *models.Chapter) int {
		return util.CompareChapterKeys(chapterKey(a), chapterKey(b))
	})
	return chapters, nil
}

func chapterKey(c *models.Chapter) util.ChapterKey {
	return util.ChapterKey{Volume: c.Volume, DisplayNumber: c.DisplayNumber, ID: c.ID}
}

// ListChapterPages returns the pages of a chapter in reading order.
func (s *Store) ListChapterPages(chapterID int64) ([]*models.ChapterPage, error) {
	rows, err := s.db.Query(`SELECT id, chapter_id, media_id, page_order
		FROM chapter_pages WHERE chapter_id = ? ORDER BY page_order`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*models.ChapterPage
	for rows.Next() {
		var p models.ChapterPage
		if err := rows.Scan(&p.ID, &p.ChapterID, &p.MediaID, &p.PageOrder); err != nil {
			return nil, err
		}
		pages = append(pages, &p)
	}
	return pages, rows.Err()
}

// ReplaceChapterPages swaps the full page list of a chapter and updates its
// page count. Returns the media ids that were dropped, so the caller can
// request their deletion.
func (s *Store) ReplaceChapterPages(chapterID int64, pageMediaIDs []string) ([]string, error) {
	if err := validatePageList(pageMediaIDs); err != nil {
		return nil, err
	}
	old, err := s.ListChapterPages(chapterID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM chapter_pages WHERE chapter_id = ?", chapterID); err != nil {
		return nil, err
	}
	for i, mediaID := range pageMediaIDs {
		if _, err := tx.Exec("INSERT INTO chapter_pages (chapter_id, media_id, page_order) VALUES (?, ?, ?)",
			chapterID, mediaID, i); err != nil {
			return nil, err
		}
	}
	res, err := tx.Exec("UPDATE chapters SET page_count = ?, updated_at = ? WHERE id = ?",
		len(pageMediaIDs), time.Now(), chapterID)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res, ErrChapterNotFound); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	kept := make(map[string]bool, len(pageMediaIDs))
	for _, id := range pageMediaIDs {
		kept[id] = true
	}
	var dropped []string
	for _, p := range old {
		if !kept[p.MediaID] {
			dropped = append(dropped, p.MediaID)
		}
	}
	return dropped, nil
}

// UpdateChapterMetadata updates volume, display number and name.
func (s *Store) UpdateChapterMetadata(c *models.Chapter) error {
	res, err := s.db.Exec(`UPDATE chapters SET volume = ?, display_number = ?, name = ?, updated_at = ?
		WHERE id = ?`, c.Volume, c.DisplayNumber, nullStr(c.Name), time.Now(), c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("chapter %q already exists for this title: %w", c.DisplayNumber, errs.ErrConflict)
		}
		return err
	}
	return requireAffected(res, ErrChapterNotFound)
}

// DeleteChapter removes a chapter and returns the media ids of its pages so
// the caller can request object deletion.
func (s *Store) DeleteChapter(id int64) ([]string, error) {
	pages, err := s.ListChapterPages(id)
	if err != nil {
		return nil, err
	}
	res, err := s.db.Exec("DELETE FROM chapters WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res, ErrChapterNotFound); err != nil {
		return nil, err
	}
	mediaIDs := make([]string, 0, len(pages))
	for _, p := range pages {
		mediaIDs = append(mediaIDs, p.MediaID)
	}
	return mediaIDs, nil
}

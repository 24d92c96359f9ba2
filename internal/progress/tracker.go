// Package progress tracks per-user, per-chapter reading state and
// answers the "what do I read next" question.
package progress

import (
	"fmt"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
)

type Tracker struct {
	store *store.Store
}

func NewTracker(s *store.Store) *Tracker {
	return &Tracker{store: s}
}

// SetReadStatus records a read/unread mark for a chapter, optionally
// with a last-seen page. Recorded page positions never move backwards:
// a stale writer cannot erase progress a faster one already stored.
// Marking a chapter read pins the position to its final page.
func (t *Tracker) SetReadStatus(userID, titleID, chapterID int64, isRead bool, lastPage *int) (*models.ChapterProgress, error) {
	chapter, err := t.chapterOfTitle(titleID, chapterID)
	if err != nil {
		return nil, err
	}

	if lastPage != nil {
		if *lastPage < 1 {
			return nil, fmt.Errorf("last page must be positive: %w", errs.ErrInvalidRequest)
		}
		if chapter.PageCount > 0 && *lastPage > chapter.PageCount {
			return nil, fmt.Errorf("last page %d exceeds chapter page count %d: %w",
				*lastPage, chapter.PageCount, errs.ErrInvalidRequest)
		}
	}

	if isRead {
		// A read chapter is by definition at its last page.
		err = t.store.UpsertProgressRead(userID, titleID, chapterID, chapter.PageCount)
	} else {
		err = t.store.UpsertProgressUnread(userID, titleID, chapterID, lastPage)
	}
	if err != nil {
		return nil, err
	}
	return t.store.GetProgress(userID, chapterID)
}

// GetReadStatus reports the stored progress for a chapter. A chapter
// the user never touched reads as unread with no page position.
func (t *Tracker) GetReadStatus(userID, titleID, chapterID int64) (*models.ChapterProgress, error) {
	if _, err := t.chapterOfTitle(titleID, chapterID); err != nil {
		return nil, err
	}
	p, err := t.store.GetProgress(userID, chapterID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &models.ChapterProgress{UserID: userID, TitleID: titleID, ChapterID: chapterID}, nil
	}
	return p, nil
}

// GetNextChapter walks the title's chapters in reading order and
// returns the first one the user has not finished. A fully read title,
// like a title with no chapters, yields a result with Found false.
func (t *Tracker) GetNextChapter(userID, titleID int64) (*models.NextChapter, error) {
	if _, err := t.store.GetTitleByID(titleID); err != nil {
		return nil, err
	}
	chapters, err := t.store.ListChaptersByTitle(titleID)
	if err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return &models.NextChapter{}, nil
	}

	read, err := t.store.GetProgressByTitle(userID, titleID)
	if err != nil {
		return nil, err
	}
	for _, ch := range chapters {
		if p, ok := read[ch.ID]; ok && p.Read {
			continue
		}
		id := ch.ID
		return &models.NextChapter{
			ChapterID:     &id,
			DisplayNumber: ch.DisplayNumber,
			Name:          ch.Name,
			Found:         true,
		}, nil
	}
	return &models.NextChapter{}, nil
}

// chapterOfTitle loads a chapter and verifies it belongs to the given
// title. A chapter reached through the wrong title is treated as
// missing rather than leaked.
func (t *Tracker) chapterOfTitle(titleID, chapterID int64) (*models.Chapter, error) {
	if _, err := t.store.GetTitleByID(titleID); err != nil {
		return nil, err
	}
	chapter, err := t.store.GetChapterByID(chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.TitleID != titleID {
		return nil, store.ErrChapterNotFound
	}
	return chapter, nil
}

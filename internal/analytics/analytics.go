// Package analytics keeps an interaction log of reading activity and
// serves aggregate statistics derived from it.
package analytics

import (
	"fmt"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// RecordTitleView logs one view of a title page.
func (svc *Service) RecordTitleView(userID, titleID int64) error {
	return svc.store.RecordInteraction(userID, models.InteractionTitleViewed, titleID, nil)
}

// RecordVote stores the user's current like or dislike for a title,
// replacing any earlier vote in either direction.
func (svc *Service) RecordVote(userID, titleID int64, liked bool) error {
	if _, err := svc.store.GetTitleByID(titleID); err != nil {
		return err
	}
	typ := models.InteractionTitleLiked
	if !liked {
		typ = models.InteractionTitleDislike
	}
	return svc.store.ReplaceInteraction(userID, typ, titleID, nil,
		models.InteractionTitleLiked, models.InteractionTitleDislike)
}

// RecordRating stores the user's current 1-10 rating for a title.
func (svc *Service) RecordRating(userID, titleID int64, rating int) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("rating %d out of range: %w", rating, errs.ErrInvalidRequest)
	}
	return svc.store.ReplaceInteraction(userID, models.InteractionTitleRated, titleID, &rating)
}

// RecordChapterRead logs a finished chapter, optionally with the time
// spent reading it. Re-reading a chapter updates the single log row
// rather than inflating the totals.
func (svc *Service) RecordChapterRead(userID, chapterID int64, readTimeMS *int) error {
	return svc.store.ReplaceInteraction(userID, models.InteractionChapterRead, chapterID, readTimeMS)
}

// RecordLibraryChange logs a title entering or leaving a library.
func (svc *Service) RecordLibraryChange(userID, titleID int64, added bool) error {
	typ := models.InteractionLibraryAdd
	if !added {
		typ = models.InteractionLibraryDrop
	}
	return svc.store.RecordInteraction(userID, typ, titleID, nil)
}

// TitleAnalytics returns the aggregate stats for one title.
func (svc *Service) TitleAnalytics(titleID int64) (*models.TitleAnalytics, error) {
	if _, err := svc.store.GetTitleByID(titleID); err != nil {
		return nil, err
	}
	return svc.store.TitleInteractionStats(titleID)
}

// UserStats returns the reading summary for one user.
func (svc *Service) UserStats(userID int64) (*models.UserStats, error) {
	return svc.store.UserInteractionStats(userID)
}

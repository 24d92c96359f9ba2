// Package catalog exposes faceted title search and the curation
// operations of the title database.
package catalog

import (
	"fmt"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
	"github.com/harakki/comics-server/internal/util"
)

type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Search executes a normalized criteria set and wraps the result in a
// page envelope.
func (svc *Service) Search(opts store.TitleSearchOptions) (models.Page[*models.TitleSummary], error) {
	summaries, total, err := svc.store.SearchTitles(opts)
	if err != nil {
		return models.Page[*models.TitleSummary]{}, err
	}
	return models.NewPage(summaries, opts.Page, opts.PageSize, total), nil
}

// NewTitleInput carries the writable fields of a title.
type NewTitleInput struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Type          models.TitleType     `json:"type"`
	Status        models.TitleStatus   `json:"status"`
	ReleaseYear   *int                 `json:"release_year"`
	ContentRating models.ContentRating `json:"content_rating"`
	CountryCode   string               `json:"country_code"`
	CoverMediaID  *string              `json:"cover_media_id"`
	PublisherID   *int64               `json:"publisher_id"`
	TagIDs        []int64              `json:"tag_ids"`
}

// CreateTitle validates the input, derives a unique slug from the name
// and persists the title with its tag set.
func (svc *Service) CreateTitle(in NewTitleInput) (*models.Title, error) {
	if err := svc.validateTitleInput(in); err != nil {
		return nil, err
	}
	exists, err := svc.store.TitleExistsByName(in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("title %q already exists: %w", in.Name, errs.ErrConflict)
	}
	slug, err := svc.uniqueSlug(in.Name)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:          in.Name,
		Slug:          slug,
		Description:   in.Description,
		Type:          in.Type,
		Status:        in.Status,
		ReleaseYear:   in.ReleaseYear,
		ContentRating: in.ContentRating,
		CountryCode:   in.CountryCode,
		CoverMediaID:  in.CoverMediaID,
		PublisherID:   in.PublisherID,
	}
	created, err := svc.store.CreateTitle(title)
	if err != nil {
		return nil, err
	}
	if len(in.TagIDs) > 0 {
		if err := svc.store.ReplaceTitleTags(created.ID, in.TagIDs); err != nil {
			return nil, err
		}
	}
	return svc.store.GetTitleByID(created.ID)
}

// UpdateTitle applies writable fields to an existing title. The slug is
// left untouched so bookmarked URLs survive renames.
func (svc *Service) UpdateTitle(id int64, in NewTitleInput) (*models.Title, error) {
	if err := svc.validateTitleInput(in); err != nil {
		return nil, err
	}
	title, err := svc.store.GetTitleByID(id)
	if err != nil {
		return nil, err
	}
	title.Name = in.Name
	title.Description = in.Description
	title.Type = in.Type
	title.Status = in.Status
	title.ReleaseYear = in.ReleaseYear
	title.ContentRating = in.ContentRating
	title.CountryCode = in.CountryCode
	title.CoverMediaID = in.CoverMediaID
	title.PublisherID = in.PublisherID
	if err := svc.store.UpdateTitle(title); err != nil {
		return nil, err
	}
	if in.TagIDs != nil {
		if err := svc.store.ReplaceTitleTags(id, in.TagIDs); err != nil {
			return nil, err
		}
	}
	return svc.store.GetTitleByID(id)
}

// ReplaceSlug assigns a new slug to a title. The slug is normalized
// through the same slugifier as generated ones and must be free.
func (svc *Service) ReplaceSlug(id int64, slug string) (*models.Title, error) {
	normalized := util.Slugify(slug)
	if normalized == "" {
		return nil, fmt.Errorf("slug %q is empty after normalization: %w", slug, errs.ErrInvalidRequest)
	}
	title, err := svc.store.GetTitleByID(id)
	if err != nil {
		return nil, err
	}
	if title.Slug != normalized {
		taken, err := svc.store.TitleSlugTaken(normalized)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("slug %q is already in use: %w", normalized, errs.ErrConflict)
		}
		if err := svc.store.UpdateTitleSlug(id, normalized); err != nil {
			return nil, err
		}
	}
	return svc.store.GetTitleByID(id)
}

func (svc *Service) validateTitleInput(in NewTitleInput) error {
	if in.Name == "" {
		return fmt.Errorf("title name cannot be empty: %w", errs.ErrInvalidRequest)
	}
	if in.Type != "" {
		switch in.Type {
		case models.TitleTypeManga, models.TitleTypeManhwa, models.TitleTypeManhua,
			models.TitleTypeComic, models.TitleTypeNovel:
		default:
			return fmt.Errorf("unknown title type %q: %w", in.Type, errs.ErrInvalidRequest)
		}
	}
	if in.Status != "" {
		switch in.Status {
		case models.TitleStatusAnnounced, models.TitleStatusOngoing, models.TitleStatusCompleted,
			models.TitleStatusCancelled, models.TitleStatusHiatus:
		default:
			return fmt.Errorf("unknown title status %q: %w", in.Status, errs.ErrInvalidRequest)
		}
	}
	if in.ContentRating != "" && in.ContentRating.Rank() > models.RatingErotica.Rank() {
		return fmt.Errorf("unknown content rating %q: %w", in.ContentRating, errs.ErrInvalidRequest)
	}
	if len(in.TagIDs) > 0 {
		if _, err := svc.store.GetTagsByIDs(in.TagIDs); err != nil {
			return err
		}
	}
	if in.PublisherID != nil {
		if _, err := svc.store.GetPublisherByID(*in.PublisherID); err != nil {
			return err
		}
	}
	if in.CoverMediaID != nil {
		if _, err := svc.store.GetMediaByID(*in.CoverMediaID); err != nil {
			return err
		}
	}
	return nil
}

// uniqueSlug slugifies the name and appends a numeric suffix until the
// slug is free.
func (svc *Service) uniqueSlug(name string) (string, error) {
	base := util.Slugify(name)
	if base == "" {
		base = "title"
	}
	slug := base
	for n := 2; ; n++ {
		taken, err := svc.store.TitleSlugTaken(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

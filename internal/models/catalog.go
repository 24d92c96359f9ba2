// This file defines the core data structures (models) for the catalog:
// titles, chapters, tags, authors and publishers.

package models

import "time"

// TitleType classifies the kind of cataloged work.
type TitleType string

const (
	TitleTypeManga  TitleType = "MANGA"
	TitleTypeManhwa TitleType = "MANHWA"
	TitleTypeManhua TitleType = "MANHUA"
	TitleTypeComic  TitleType = "COMIC"
	TitleTypeNovel  TitleType = "NOVEL"
)

// TitleStatus tracks the publication state of a title.
type TitleStatus string

const (
	TitleStatusAnnounced TitleStatus = "ANNOUNCED"
	TitleStatusOngoing   TitleStatus = "ONGOING"
	TitleStatusCompleted TitleStatus = "COMPLETED"
	TitleStatusCancelled TitleStatus = "CANCELLED"
	TitleStatusHiatus    TitleStatus = "HIATUS"
)

// ContentRating is an ordered scale; filtering by a maximum rating includes
// every rating at or below it.
type ContentRating string

const (
	RatingSafe        ContentRating = "SAFE"
	RatingSuggestive  ContentRating = "SUGGESTIVE"
	RatingSixteenPlus ContentRating = "SIXTEEN_PLUS"
	RatingErotica     ContentRating = "EROTICA"
)

// Rank returns the position of the rating on the ordered scale. Unknown
// ratings rank above everything so they are never accidentally included.
func (r ContentRating) Rank() int {
	switch r {
	case RatingSafe:
		return 0
	case RatingSuggestive:
		return 1
	case RatingSixteenPlus:
		return 2
	case RatingErotica:
		return 3
	}
	return 4
}

// Title represents a single cataloged work.
type Title struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description,omitempty"`
	Type          TitleType      `json:"type,omitempty"`
	Status        TitleStatus    `json:"status,omitempty"`
	ReleaseYear   *int           `json:"release_year,omitempty"`
	ContentRating ContentRating  `json:"content_rating"`
	CountryCode   string         `json:"country_code,omitempty"`
	CoverMediaID  *string        `json:"cover_media_id,omitempty"`
	PublisherID   *int64         `json:"publisher_id,omitempty"`
	Tags          []*Tag         `json:"tags,omitempty"`
	Authors       []*TitleAuthor `json:"authors,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TitleSummary is the compact projection returned by catalog searches.
type TitleSummary struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Type          TitleType     `json:"type,omitempty"`
	Status        TitleStatus   `json:"status,omitempty"`
	ReleaseYear   *int          `json:"release_year,omitempty"`
	ContentRating ContentRating `json:"content_rating"`
	CoverMediaID  *string       `json:"cover_media_id,omitempty"`
}

// Chapter represents a single chapter of a title. DisplayNumber is an
// arbitrary ordering token ("1", "10.5", "Extra"); canonical ordering is
// resolved by util.CompareChapters.
type Chapter struct {
	ID            int64     `json:"id"`
	TitleID       int64     `json:"title_id"`
	Volume        *int      `json:"volume,omitempty"`
	DisplayNumber string    `json:"display_number"`
	Name          string    `json:"name,omitempty"`
	PageCount     int       `json:"page_count"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// ChapterPage is one page of a chapter, backed by a media object.
type ChapterPage struct {
	ID        int64  `json:"id"`
	ChapterID int64  `json:"chapter_id"`
	MediaID   string `json:"media_id"`
	PageOrder int    `json:"page_order"`
	URL       string `json:"url,omitempty"`
}

// Tag is a browsable label attached to titles.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AuthorRole describes how an author contributed to a title.
type AuthorRole string

const (
	RoleStory AuthorRole = "STORY"
	RoleArt   AuthorRole = "ART"
)

// Author is a person credited on titles.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TitleAuthor links an author to a title with a role and display order.
type TitleAuthor struct {
	AuthorID  int64      `json:"author_id"`
	Name      string     `json:"name"`
	Role      AuthorRole `json:"role"`
	SortOrder int        `json:"sort_order"`
}

// Publisher is the publishing company of a title.
type Publisher struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	CountryCode string    `json:"country_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

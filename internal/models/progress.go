package models

import "time"

// ChapterProgress is one user's read state for one chapter. At most one row
// exists per (user, chapter); absence means "unread".
type ChapterProgress struct {
	UserID    int64     `json:"user_id"`
	TitleID   int64     `json:"title_id"`
	ChapterID int64     `json:"chapter_id"`
	Read      bool      `json:"is_read"`
	LastPage  *int      `json:"last_page_number,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextChapter is the continuation point for a user within a title. A zero
// value (false Found) means there is nothing left to continue.
type NextChapter struct {
	ChapterID     *int64 `json:"chapter_id,omitempty"`
	DisplayNumber string `json:"display_number,omitempty"`
	Name          string `json:"name,omitempty"`
	Found         bool   `json:"found"`
}

package models

import "time"

// User is an account that can authenticate against the API.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReadingStatus is the shelf a library entry sits on.
type ReadingStatus string

const (
	StatusToRead    ReadingStatus = "TO_READ"
	StatusReading   ReadingStatus = "READING"
	StatusOnHold    ReadingStatus = "ON_HOLD"
	StatusDropped   ReadingStatus = "DROPPED"
	StatusCompleted ReadingStatus = "COMPLETED"
	StatusReReading ReadingStatus = "RE_READING"
)

// LibraryEntry associates a user with a title in their personal library.
type LibraryEntry struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	TitleID   int64         `json:"title_id"`
	Status    ReadingStatus `json:"status"`
	Rating    *int          `json:"rating,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Collection is a user-curated, optionally shareable list of titles.
type Collection struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	ShareToken  *string   `json:"share_token,omitempty"`
	TitleIDs    []int64   `json:"title_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

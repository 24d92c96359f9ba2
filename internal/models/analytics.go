package models

import "time"

// InteractionType labels one recorded user action in the interaction log.
type InteractionType string

const (
	InteractionChapterRead  InteractionType = "CHAPTER_READ"
	InteractionTitleViewed  InteractionType = "TITLE_VIEWED"
	InteractionTitleLiked   InteractionType = "TITLE_LIKED"
	InteractionTitleDislike InteractionType = "TITLE_DISLIKED"
	InteractionTitleRated   InteractionType = "TITLE_RATED"
	InteractionLibraryAdd   InteractionType = "TITLE_ADDED_TO_LIBRARY"
	InteractionLibraryDrop  InteractionType = "TITLE_REMOVED_FROM_LIBRARY"
)

// TitleAnalytics aggregates the interaction log for one title.
type TitleAnalytics struct {
	TitleID       int64     `json:"title_id"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	TotalViews    int64     `json:"total_views"`
	Likes         int64     `json:"likes"`
	Dislikes      int64     `json:"dislikes"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// UserStats summarizes one user's reading activity. The heatmap maps
// ISO dates (YYYY-MM-DD) to chapters read that day.
type UserStats struct {
	UserID            int64            `json:"user_id"`
	TotalChaptersRead int64            `json:"total_chapters_read"`
	TotalReadTimeMS   int64            `json:"total_read_time_ms"`
	ActivityHeatmap   map[string]int64 `json:"activity_heatmap"`
}

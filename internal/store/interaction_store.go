package store

import (
	"database/sql"
	"time"

	"github.com/harakki/comics-server/internal/models"
)

// RecordInteraction appends one row to the interaction log. value is
// interpreted per type: rating points for TITLE_RATED, read time in
// milliseconds for CHAPTER_READ, unused otherwise.
func (s *Store) RecordInteraction(userID int64, typ models.InteractionType, targetID int64, value *int) error {
	_, err := s.db.Exec(`INSERT INTO user_interactions (user_id, interaction_type, target_id, value, created_at)
		VALUES (?, ?, ?, ?, ?)`, userID, typ, targetID, value, time.Now())
	return err
}

// ReplaceInteraction records an opinion-style interaction, dropping the
// user's previous rows of the superseded types first so each user holds
// at most one current vote or rating per target.
func (s *Store) ReplaceInteraction(userID int64, typ models.InteractionType, targetID int64, value *int, supersedes ...models.InteractionType) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, old := range append(supersedes, typ) {
		if _, err := tx.Exec(`DELETE FROM user_interactions
			WHERE user_id = ? AND target_id = ? AND interaction_type = ?`,
			userID, targetID, old); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO user_interactions (user_id, interaction_type, target_id, value, created_at)
		VALUES (?, ?, ?, ?, ?)`, userID, typ, targetID, value, time.Now()); err != nil {
		return err
	}
	return tx.Commit()
}

// TitleInteractionStats aggregates the log for one title: average
// rating over current TITLE_RATED rows, plus view and vote counts.
func (s *Store) TitleInteractionStats(titleID int64) (*models.TitleAnalytics, error) {
	stats := &models.TitleAnalytics{TitleID: titleID, GeneratedAt: time.Now()}

	var avg sql.NullFloat64
	err := s.db.QueryRow(`SELECT AVG(value) FROM user_interactions
		WHERE target_id = ? AND interaction_type = ?`,
		titleID, models.InteractionTitleRated).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if avg.Valid {
		stats.AverageRating = &avg.Float64
	}

	counts := []struct {
		typ  models.InteractionType
		dest *int64
	}{
		{models.InteractionTitleViewed, &stats.TotalViews},
		{models.InteractionTitleLiked, &stats.Likes},
		{models.InteractionTitleDislike, &stats.Dislikes},
	}
	for _, c := range counts {
		err := s.db.QueryRow(`SELECT COUNT(*) FROM user_interactions
			WHERE target_id = ? AND interaction_type = ?`, titleID, c.typ).Scan(c.dest)
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// UserInteractionStats summarizes a user's reading activity from
// CHAPTER_READ rows.
func (s *Store) UserInteractionStats(userID int64) (*models.UserStats, error) {
	stats := &models.UserStats{UserID: userID, ActivityHeatmap: map[string]int64{}}

	err := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(value), 0) FROM user_interactions
		WHERE user_id = ? AND interaction_type = ?`,
		userID, models.InteractionChapterRead).Scan(&stats.TotalChaptersRead, &stats.TotalReadTimeMS)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT date(created_at), COUNT(*) FROM user_interactions
		WHERE user_id = ? AND interaction_type = ?
		GROUP BY date(created_at)`, userID, models.InteractionChapterRead)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		stats.ActivityHeatmap[day] = count
	}
	return stats, rows.Err()
}

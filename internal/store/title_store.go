package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
)

// ratingRankSQL maps the ordered content rating scale into a sortable
// integer. Must stay in sync with models.ContentRating.Rank.
const ratingRankSQL = `CASE t.content_rating
	WHEN 'SAFE' THEN 0
	WHEN 'SUGGESTIVE' THEN 1
	WHEN 'SIXTEEN_PLUS' THEN 2
	WHEN 'EROTICA' THEN 3
	ELSE 4 END`

// TitleSearchOptions is the normalized filter set executed against the
// catalog. Filters are conjunctive across fields and disjunctive within the
// multi-select fields.
type TitleSearchOptions struct {
	Search    string
	Types     []models.TitleType
	Statuses  []models.TitleStatus
	TagSlugs  []string
	YearFrom  *int
	YearTo    *int
	MaxRating *models.ContentRating
	SortBy    string // "name" or "year"
	SortDesc  bool
	Page      int // zero-based
	PageSize  int
}

// SearchTitles resolves the options into a deterministic, paginated result.
// It returns the matching page and the full matching count.
func (s *Store) SearchTitles(opts TitleSearchOptions) ([]*models.TitleSummary, int, error) {
	where, args := buildTitleFilter(opts)

	var total int
	countQuery := "SELECT COUNT(*) FROM titles t WHERE " + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting titles: %w", err)
	}

	// Secondary sort on id keeps pagination stable when the primary key ties.
	var orderBy string
	switch opts.SortBy {
	case "year":
		orderBy = "t.release_year"
	default:
		orderBy = "LOWER(t.name)"
	}
	dir := "ASC"
	if opts.SortDesc {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.slug, t.type, t.status, t.release_year, t.content_rating, t.cover_media_id
		FROM titles t
		WHERE %s
		ORDER BY %s %s, t.id ASC
		LIMIT ? OFFSET ?`, where, orderBy, dir)
	args = append(args, opts.PageSize, opts.Page*opts.PageSize)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("searching titles: %w", err)
	}
	defer rows.Close()

	var results []*models.TitleSummary
	for rows.Next() {
		var t models.TitleSummary
		var titleType, status sql.NullString
		var year sql.NullInt64
		var cover sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &titleType, &status, &year, &t.ContentRating, &cover); err != nil {
			return nil, 0, err
		}
		t.Type = models.TitleType(titleType.String)
		t.Status = models.TitleStatus(status.String)
		if year.Valid {
			y := int(year.Int64)
			t.ReleaseYear = &y
		}
		if cover.Valid {
			t.CoverMediaID = &cover.String
		}
		results = append(results, &t)
	}
	return results, total, rows.Err()
}

func buildTitleFilter(opts TitleSearchOptions) (string, []interface{}) {
	clauses := []string{"1=1"}
	var args []interface{}

	if opts.Search != "" {
		clauses = append(clauses, "(LOWER(t.name) LIKE ? OR LOWER(t.slug) LIKE ?)")
		needle := "%" + strings.ToLower(opts.Search) + "%"
		args = append(args, needle, needle)
	}
	if len(opts.Types) > 0 {
		clauses = append(clauses, "t.type IN ("+placeholders(len(opts.Types))+")")
		for _, v := range opts.Types {
			args = append(args, string(v))
		}
	}
	if len(opts.Statuses) > 0 {
		clauses = append(clauses, "t.status IN ("+placeholders(len(opts.Statuses))+")")
		for _, v := range opts.Statuses {
			args = append(args, string(v))
		}
	}
	if len(opts.TagSlugs) > 0 {
		// A title matches when it carries ANY of the selected tags.
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM title_tags tt JOIN tags g ON g.id = tt.tag_id
			WHERE tt.title_id = t.id AND g.slug IN (`+placeholders(len(opts.TagSlugs))+`))`)
		for _, v := range opts.TagSlugs {
			args = append(args, v)
		}
	}
	// Titles with an unknown release year are excluded whenever any year
	// bound is active.
	if opts.YearFrom != nil {
		clauses = append(clauses, "t.release_year IS NOT NULL AND t.release_year >= ?")
		args = append(args, *opts.YearFrom)
	}
	if opts.YearTo != nil {
		clauses = append(clauses, "t.release_year IS NOT NULL AND t.release_year <= ?")
		args = append(args, *opts.YearTo)
	}
	if opts.MaxRating != nil {
		clauses = append(clauses, ratingRankSQL+" <= ?")
		args = append(args, opts.MaxRating.Rank())
	}

	return strings.Join(clauses, " AND "), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// CreateTitle inserts a new title. The caller is responsible for providing a
// unique slug (see catalog.Service).
func (s *Store) CreateTitle(t *models.Title) (*models.Title, error) {
	query := `INSERT INTO titles
		(name, slug, description, type, status, release_year, content_rating, country_code, cover_media_id, publisher_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	res, err := s.db.Exec(query,
		t.Name, t.Slug, t.Description, nullStr(string(t.Type)), nullStr(string(t.Status)),
		t.ReleaseYear, t.ContentRating, nullStr(t.CountryCode), t.CoverMediaID, t.PublisherID, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("title name or slug already exists: %w", errs.ErrConflict)
		}
		return nil, err
	}
	t.ID, _ = res.LastInsertId()
	t.CreatedAt, t.UpdatedAt = now, now
	return t, nil
}

// GetTitleByID fetches a title with its tags and author credits.
func (s *Store) GetTitleByID(id int64) (*models.Title, error) {
	return s.getTitle("t.id = ?", id)
}

// GetTitleBySlug fetches a title by its unique slug.
func (s *Store) GetTitleBySlug(slug string) (*models.Title, error) {
	return s.getTitle("t.slug = ?", slug)
}

func (s *Store) getTitle(where string, arg interface{}) (*models.Title, error) {
	var t models.Title
	var titleType, status, description, country sql.NullString
	var year sql.NullInt64
	var cover sql.NullString
	var publisherID sql.NullInt64
	query := `SELECT t.id, t.name, t.slug, t.description, t.type, t.status, t.release_year,
		t.content_rating, t.country_code, t.cover_media_id, t.publisher_id, t.created_at, t.updated_at
		FROM titles t WHERE ` + where
	err := s.db.QueryRow(query, arg).Scan(
		&t.ID, &t.Name, &t.Slug, &description, &titleType, &status, &year,
		&t.ContentRating, &country, &cover, &publisherID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTitleNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Type = models.TitleType(titleType.String)
	t.Status = models.TitleStatus(status.String)
	t.CountryCode = country.String
	if year.Valid {
		y := int(year.Int64)
		t.ReleaseYear = &y
	}
	if cover.Valid {
		t.CoverMediaID = &cover.String
	}
	if publisherID.Valid {
		t.PublisherID = &publisherID.Int64
	}

	tags, err := s.listTitleTags(t.ID)
	if err != nil {
		return nil, err
	}
	t.Tags = tags

	authors, err := s.listTitleAuthors(t.ID)
	if err != nil {
		return nil, err
	}
	t.Authors = authors
	return &t, nil
}

// UpdateTitle persists the mutable metadata fields of a title.
func (s *Store) UpdateTitle(t *models.Title) error {
	query := `UPDATE titles SET name = ?, description = ?, type = ?, status = ?, release_year = ?,
		content_rating = ?, country_code = ?, cover_media_id = ?, publisher_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := s.db.Exec(query,
		t.Name, t.Description, nullStr(string(t.Type)), nullStr(string(t.Status)), t.ReleaseYear,
		t.ContentRating, nullStr(t.CountryCode), t.CoverMediaID, t.PublisherID, time.Now(), t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("title name already exists: %w", errs.ErrConflict)
		}
		return err
	}
	return requireAffected(res, ErrTitleNotFound)
}

// UpdateTitleSlug replaces the slug of a title.
func (s *Store) UpdateTitleSlug(id int64, slug string) error {
	res, err := s.db.Exec("UPDATE titles SET slug = ?, updated_at = ? WHERE id = ?", slug, time.Now(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug already exists: %w", errs.ErrConflict)
		}
		return err
	}
	return requireAffected(res, ErrTitleNotFound)
}

// DeleteTitle removes a title. Chapters, tags, progress and library entries
// cascade at the schema level.
func (s *Store) DeleteTitle(id int64) error {
	res, err := s.db.Exec("DELETE FROM titles WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrTitleNotFound)
}

// TitleExistsByName reports whether a title with this exact name exists.
func (s *Store) TitleExistsByName(name string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM titles WHERE name = ?", name).Scan(&n)
	return n > 0, err
}

// TitleSlugTaken reports whether a slug is already in use.
func (s *Store) TitleSlugTaken(slug string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM titles WHERE slug = ?", slug).Scan(&n)
	return n > 0, err
}

// ReplaceTitleTags replaces the full tag set of a title in one transaction.
func (s *Store) ReplaceTitleTags(titleID int64, tagIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM title_tags WHERE title_id = ?", titleID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec("INSERT INTO title_tags (title_id, tag_id) VALUES (?, ?)", titleID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AddTitleAuthor links an author to a title with a role, appended at the end
// of the credit order.
func (s *Store) AddTitleAuthor(titleID, authorID int64, role models.AuthorRole) error {
	var next int
	err := s.db.QueryRow("SELECT COALESCE(MAX(sort_order), -1) + 1 FROM title_authors WHERE title_id = ?", titleID).Scan(&next)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("INSERT INTO title_authors (title_id, author_id, role, sort_order) VALUES (?, ?, ?, ?)",
		titleID, authorID, role, next)
	if isUniqueViolation(err) {
		return fmt.Errorf("author already assigned with role %s: %w", role, errs.ErrConflict)
	}
	return err
}

// RemoveTitleAuthor unlinks all roles of an author from a title.
func (s *Store) RemoveTitleAuthor(titleID, authorID int64) error {
	res, err := s.db.Exec("DELETE FROM title_authors WHERE title_id = ? AND author_id = ?", titleID, authorID)
	if err != nil {
		return err
	}
	return requireAffected(res, ErrAuthorNotFound)
}

func (s *Store) listTitleTags(titleID int64) ([]*models.Tag, error) {
	rows, err := s.db.Query(`SELECT g.id, g.name, g.slug FROM tags g
		JOIN title_tags tt ON tt.tag_id = g.id WHERE tt.title_id = ? ORDER BY g.name`, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

func (s *Store) listTitleAuthors(titleID int64) ([]*models.TitleAuthor, error) {
	rows, err := s.db.Query(`SELECT ta.author_id, a.name, ta.role, ta.sort_order
		FROM title_authors ta JOIN authors a ON a.id = ta.author_id
		WHERE ta.title_id = ? ORDER BY ta.sort_order`, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []*models.TitleAuthor
	for rows.Next() {
		var c models.TitleAuthor
		if err := rows.Scan(&c.AuthorID, &c.Name, &c.Role, &c.SortOrder); err != nil {
			return nil, err
		}
		credits = append(credits, &c)
	}
	return credits, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParseSearchCriteria turns raw query parameters into a validated,
// normalized option set. Multi-value parameters accept both repeated
// keys and comma-separated lists. Unknown enum values are rejected
// rather than silently ignored.
func ParseSearchCriteria(values url.Values) (store.TitleSearchOptions, error) {
	opts := store.TitleSearchOptions{
		Search:   strings.TrimSpace(values.Get("search")),
		PageSize: defaultPageSize,
	}

	for _, raw := range multiValues(values, "type") {
		t := models.TitleType(strings.ToUpper(raw))
		switch t {
		case models.TitleTypeManga, models.TitleTypeManhwa, models.TitleTypeManhua,
			models.TitleTypeComic, models.TitleTypeNovel:
			opts.Types = append(opts.Types, t)
		default:
			return opts, fmt.Errorf("unknown title type %q: %w", raw, errs.ErrInvalidRequest)
		}
	}

	for _, raw := range multiValues(values, "titleStatus") {
		st := models.TitleStatus(strings.ToUpper(raw))
		switch st {
		case models.TitleStatusAnnounced, models.TitleStatusOngoing, models.TitleStatusCompleted,
			models.TitleStatusCancelled, models.TitleStatusHiatus:
			opts.Statuses = append(opts.Statuses, st)
		default:
			return opts, fmt.Errorf("unknown title status %q: %w", raw, errs.ErrInvalidRequest)
		}
	}

	opts.TagSlugs = multiValues(values, "tags")

	var err error
	if opts.YearFrom, err = intParam(values, "yearFrom"); err != nil {
		return opts, err
	}
	if opts.YearTo, err = intParam(values, "yearTo"); err != nil {
		return opts, err
	}
	// An inverted year range is a valid query that matches nothing.

	if raw := values.Get("maxContentRating"); raw != "" {
		r := models.ContentRating(strings.ToUpper(raw))
		if r.Rank() > models.RatingErotica.Rank() {
			return opts, fmt.Errorf("unknown content rating %q: %w", raw, errs.ErrInvalidRequest)
		}
		opts.MaxRating = &r
	}

	switch strings.ToUpper(values.Get("sort")) {
	case "", "NAME_ASC":
		opts.SortBy = "name"
	case "NAME_DESC":
		opts.SortBy, opts.SortDesc = "name", true
	case "YEAR_ASC":
		opts.SortBy = "year"
	case "YEAR_DESC":
		opts.SortBy, opts.SortDesc = "year", true
	default:
		return opts, fmt.Errorf("unknown sort %q: %w", values.Get("sort"), errs.ErrInvalidRequest)
	}

	if page, err := intParam(values, "page"); err != nil {
		return opts, err
	} else if page != nil {
		if *page < 0 {
			return opts, fmt.Errorf("page must not be negative: %w", errs.ErrInvalidRequest)
		}
		opts.Page = *page
	}
	if size, err := intParam(values, "size"); err != nil {
		return opts, err
	} else if size != nil {
		if *size < 1 {
			return opts, fmt.Errorf("size must be positive: %w", errs.ErrInvalidRequest)
		}
		opts.PageSize = min(*size, maxPageSize)
	}

	return opts, nil
}

// multiValues collects a parameter given either as repeated keys or as
// a comma-separated list, dropping empty entries.
func multiValues(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(values url.Values, key string) (*int, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer: %w", key, errs.ErrInvalidRequest)
	}
	return &n, nil
}

package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
)

func parse(t *testing.T, query string) (store.TitleSearchOptions, error) {
	t.Helper()
	values, perr := url.ParseQuery(query)
	require.NoError(t, perr)
	return ParseSearchCriteria(values)
}

func TestParseSearchCriteriaDefaults(t *testing.T) {
	values, _ := url.ParseQuery("")
	opts, err := ParseSearchCriteria(values)
	require.NoError(t, err)

	assert.Equal(t, "", opts.Search)
	assert.Equal(t, 0, opts.Page)
	assert.Equal(t, defaultPageSize, opts.PageSize)
	assert.Equal(t, "name", opts.SortBy)
	assert.False(t, opts.SortDesc)
	assert.Nil(t, opts.MaxRating)
}

func TestParseSearchCriteriaMultiValues(t *testing.T) {
	values, _ := url.ParseQuery("type=manga,manhwa&type=comic&titleStatus=ONGOING&tags=seinen&tags=action")
	opts, err := ParseSearchCriteria(values)
	require.NoError(t, err)

	assert.Equal(t, []models.TitleType{
		models.TitleTypeManga, models.TitleTypeManhwa, models.TitleTypeComic,
	}, opts.Types)
	assert.Equal(t, []models.TitleStatus{models.TitleStatusOngoing}, opts.Statuses)
	assert.Equal(t, []string{"seinen", "action"}, opts.TagSlugs)
}

func TestParseSearchCriteriaRejectsUnknownEnums(t *testing.T) {
	for _, query := range []string{
		"type=webcomic",
		"titleStatus=PAUSED",
		"maxContentRating=EXTREME",
		"sort=TITLE_ASC",
	} {
		_, err := parse(t, query)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest, "query %q", query)
	}
}

func TestParseSearchCriteriaYearBounds(t *testing.T) {
	values, _ := url.ParseQuery("yearFrom=1990&yearTo=2000")
	opts, err := ParseSearchCriteria(values)
	require.NoError(t, err)
	assert.Equal(t, 1990, *opts.YearFrom)
	assert.Equal(t, 2000, *opts.YearTo)

	// Inverted ranges are valid queries that simply match nothing.
	opts, err = parse(t, "yearFrom=2010&yearTo=2000")
	require.NoError(t, err)
	assert.Equal(t, 2010, *opts.YearFrom)
	assert.Equal(t, 2000, *opts.YearTo)

	_, err = parse(t, "yearFrom=nineteen")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestParseSearchCriteriaSortKeys(t *testing.T) {
	values, _ := url.ParseQuery("sort=YEAR_DESC")
	opts, err := ParseSearchCriteria(values)
	require.NoError(t, err)
	assert.Equal(t, "year", opts.SortBy)
	assert.True(t, opts.SortDesc)
}

func TestParseSearchCriteriaPaging(t *testing.T) {
	values, _ := url.ParseQuery("page=3&size=50")
	opts, err := ParseSearchCriteria(values)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 50, opts.PageSize)

	// Oversized requests are clamped, not rejected.
	values, _ = url.ParseQuery("size=5000")
	opts, err = ParseSearchCriteria(values)
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, opts.PageSize)

	_, err = parse(t, "page=-1")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	_, err = parse(t, "size=0")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}

package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
	"github.com/harakki/comics-server/internal/testutil"
	"github.com/harakki/comics-server/internal/util"
)

func seedCatalog(t *testing.T, st *store.Store) {
	t.Helper()

	seinen, err := st.CreateTag("Seinen")
	require.NoError(t, err)
	action, err := st.CreateTag("Action")
	require.NoError(t, err)

	titles := []*models.Title{
		{Name: "Berserk", Type: models.TitleTypeManga, Status: models.TitleStatusHiatus,
			ReleaseYear: testutil.IntPtr(1989), ContentRating: models.RatingErotica},
		{Name: "Solo Leveling", Type: models.TitleTypeManhwa, Status: models.TitleStatusCompleted,
			ReleaseYear: testutil.IntPtr(2018), ContentRating: models.RatingSuggestive},
		{Name: "Vinland Saga", Type: models.TitleTypeManga, Status: models.TitleStatusOngoing,
			ReleaseYear: testutil.IntPtr(2005), ContentRating: models.RatingSixteenPlus},
		{Name: "Mystery Oneshot", Type: models.TitleTypeManga, Status: models.TitleStatusCompleted,
			ContentRating: models.RatingSafe}, // no release year
	}
	for _, title := range titles {
		title.Slug = util.Slugify(title.Name)
		created, err := st.CreateTitle(title)
		require.NoError(t, err)
		title.ID = created.ID
	}

	require.NoError(t, st.ReplaceTitleTags(titles[0].ID, []int64{seinen.ID, action.ID}))
	require.NoError(t, st.ReplaceTitleTags(titles[2].ID, []int64{seinen.ID}))
}

func search(t *testing.T, st *store.Store, opts store.TitleSearchOptions) []string {
	t.Helper()
	if opts.PageSize == 0 {
		opts.PageSize = 20
	}
	results, _, err := st.SearchTitles(opts)
	require.NoError(t, err)
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	return names
}

func TestSearchTitlesFreeText(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	seedCatalog(t, st)

	// Substring match is case-insensitive and covers name and slug.
	require.Equal(t, []string{"Solo Leveling"}, search(t, st, store.TitleSearchOptions{Search: "LEVEL"}))
	require.Equal(t, []string{"Vinland Saga"}, search(t, st, store.TitleSearchOptions{Search: "vinland-s"}))
	require.Empty(t, search(t, st, store.TitleSearchOptions{Search: "naruto"}))
}

func TestSearchTitlesFacets(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	seedCatalog(t, st)

	// Disjunctive within a facet.
	names := search(t, st, store.TitleSearchOptions{
		Statuses: []models.TitleStatus{models.TitleStatusCompleted, models.TitleStatusHiatus},
	})
	require.ElementsMatch(t, []string{"Berserk", "Solo Leveling", "Mystery Oneshot"}, names)

	// Conjunctive across facets.
	names = search(t, st, store.TitleSearchOptions{
		Types:    []models.TitleType{models.TitleTypeManga},
		Statuses: []models.TitleStatus{models.TitleStatusCompleted},
	})
	require.Equal(t, []string{"Mystery Oneshot"}, names)

	// Tag filter matches titles carrying any named tag.
	names = search(t, st, store.TitleSearchOptions{TagSlugs: []string{"seinen"}})
	require.ElementsMatch(t, []string{"Berserk", "Vinland Saga"}, names)
}

func TestSearchTitlesYearBoundsExcludeUnknownYears(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	seedCatalog(t, st)

	names := search(t, st, store.TitleSearchOptions{YearFrom: testutil.IntPtr(2000)})
	require.ElementsMatch(t, []string{"Solo Leveling", "Vinland Saga"}, names)

	names = search(t, st, store.TitleSearchOptions{
		YearFrom: testutil.IntPtr(1989), YearTo: testutil.IntPtr(2005),
	})
	require.ElementsMatch(t, []string{"Berserk", "Vinland Saga"}, names)

	// An inverted range matches nothing but is not an error.
	names = search(t, st, store.TitleSearchOptions{
		YearFrom: testutil.IntPtr(2010), YearTo: testutil.IntPtr(2000),
	})
	require.Empty(t, names)
}

func TestSearchTitlesMaxRatingIsInclusiveScale(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	seedCatalog(t, st)

	rating := models.RatingSixteenPlus
	names := search(t, st, store.TitleSearchOptions{MaxRating: &rating})
	require.ElementsMatch(t, []string{"Solo Leveling", "Vinland Saga", "Mystery Oneshot"}, names)

	safe := models.RatingSafe
	names = search(t, st, store.TitleSearchOptions{MaxRating: &safe})
	require.Equal(t, []string{"Mystery Oneshot"}, names)
}

func TestSearchTitlesSortAndPagination(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	seedCatalog(t, st)

	names := search(t, st, store.TitleSearchOptions{SortBy: "name"})
	require.Equal(t, []string{"Berserk", "Mystery Oneshot", "Solo Leveling", "Vinland Saga"}, names)

	names = search(t, st, store.TitleSearchOptions{SortBy: "year", SortDesc: true})
	require.Equal(t, "Solo Leveling", names[0])

	// Page windows are disjoint and the total is stable.
	page0, total0, err := st.SearchTitles(store.TitleSearchOptions{SortBy: "name", Page: 0, PageSize: 3})
	require.NoError(t, err)
	page1, total1, err := st.SearchTitles(store.TitleSearchOptions{SortBy: "name", Page: 1, PageSize: 3})
	require.NoError(t, err)
	require.Equal(t, 4, total0)
	require.Equal(t, 4, total1)
	require.Len(t, page0, 3)
	require.Len(t, page1, 1)
	require.Equal(t, "Vinland Saga", page1[0].Name)

	// A page beyond the data is empty, not an error.
	beyond, _, err := st.SearchTitles(store.TitleSearchOptions{Page: 9, PageSize: 3})
	require.NoError(t, err)
	require.Empty(t, beyond)
}

func TestSearchTitlesSortTiesBreakOnID(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	for _, name := range []string{"Alpha", "Gamma", "Beta"} {
		_, err := st.CreateTitle(&models.Title{
			Name: name, Slug: util.Slugify(name), Type: models.TitleTypeManga,
			Status: models.TitleStatusOngoing, ReleaseYear: testutil.IntPtr(2001),
			ContentRating: models.RatingSafe,
		})
		require.NoError(t, err)
	}

	// Identical years sort by insertion id, so repeated queries page
	// consistently.
	first := search(t, st, store.TitleSearchOptions{SortBy: "year", SortDesc: true})
	require.Equal(t, []string{"Alpha", "Gamma", "Beta"}, first)
	second := search(t, st, store.TitleSearchOptions{SortBy: "year", SortDesc: true})
	require.Equal(t, first, second)
}

func TestTitleUniqueness(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	seedCatalog(t, st)

	_, err := st.CreateTitle(&models.Title{Name: "Berserk", Slug: "berserk-2"})
	require.Error(t, err)

	taken, err := st.TitleSlugTaken("berserk")
	require.NoError(t, err)
	require.True(t, taken)
	taken, err = st.TitleSlugTaken("berserk-2")
	require.NoError(t, err)
	require.False(t, taken)
}

package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
	"github.com/harakki/comics-server/internal/testutil"
)

func TestCreateChapterRejectsDuplicatePageMedia(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	title := testutil.CreateTestTitle(t, st, "Dorohedoro")
	mediaID := testutil.CreateTestMedia(t, st, "p001.jpg")

	_, err := st.CreateChapter(&models.Chapter{TitleID: title.ID, DisplayNumber: "1"},
		[]string{mediaID, mediaID})
	require.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestCreateChapterRejectsOversizedPageList(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	title := testutil.CreateTestTitle(t, st, "Dorohedoro")

	// The ids are never inserted, so they do not need backing media rows.
	pages := make([]string, 501)
	for i := range pages {
		pages[i] = fmt.Sprintf("media-%03d", i)
	}
	_, err := st.CreateChapter(&models.Chapter{TitleID: title.ID, DisplayNumber: "1"}, pages)
	require.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestCreateChapterDuplicateDisplayNumberConflicts(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	title := testutil.CreateTestTitle(t, st, "Dorohedoro")
	testutil.CreateTestChapter(t, st, title.ID, nil, "1", 3)

	mediaID := testutil.CreateTestMedia(t, st, "dup.jpg")
	_, err := st.CreateChapter(&models.Chapter{TitleID: title.ID, DisplayNumber: "1"},
		[]string{mediaID})
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestReplaceChapterPagesReportsDropped(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	title := testutil.CreateTestTitle(t, st, "Dorohedoro")
	chapter := testutil.CreateTestChapter(t, st, title.ID, nil, "1", 2)

	old, err := st.ListChapterPages(chapter.ID)
	require.NoError(t, err)
	require.Len(t, old, 2)

	replacement := testutil.CreateTestMedia(t, st, "new.jpg")
	dropped, err := st.ReplaceChapterPages(chapter.ID, []string{old[0].MediaID, replacement})
	require.NoError(t, err)
	require.Equal(t, []string{old[1].MediaID}, dropped)

	updated, err := st.GetChapterByID(chapter.ID)
	require.NoError(t, err)
	require.Equal(t, 2, updated.PageCount)
}

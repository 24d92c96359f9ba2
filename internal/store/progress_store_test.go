package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harakki/comics-server/internal/store"
	"github.com/harakki/comics-server/internal/testutil"
)

func setupProgressFixture(t *testing.T) (*store.Store, int64, int64, int64) {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	user, err := st.CreateUser("reader", "hash", "user")
	require.NoError(t, err)
	title := testutil.CreateTestTitle(t, st, "Vagabond")
	chapter := testutil.CreateTestChapter(t, st, title.ID, nil, "1", 20)
	return st, user.ID, title.ID, chapter.ID
}

func TestProgressAbsenceIsNotAnError(t *testing.T) {
	st, userID, _, chapterID := setupProgressFixture(t)

	p, err := st.GetProgress(userID, chapterID)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestProgressLastPageNeverRegresses(t *testing.T) {
	st, userID, titleID, chapterID := setupProgressFixture(t)

	require.NoError(t, st.UpsertProgressUnread(userID, titleID, chapterID, testutil.IntPtr(15)))
	// A stale write with a lower page must not pull progress back.
	require.NoError(t, st.UpsertProgressUnread(userID, titleID, chapterID, testutil.IntPtr(7)))

	p, err := st.GetProgress(userID, chapterID)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.False(t, p.Read)
	require.Equal(t, 15, *p.LastPage)
}

func TestProgressNilPagePreservesExisting(t *testing.T) {
	st, userID, titleID, chapterID := setupProgressFixture(t)

	require.NoError(t, st.UpsertProgressUnread(userID, titleID, chapterID, testutil.IntPtr(9)))
	require.NoError(t, st.UpsertProgressUnread(userID, titleID, chapterID, nil))

	p, err := st.GetProgress(userID, chapterID)
	require.NoError(t, err)
	require.Equal(t, 9, *p.LastPage)
}

func TestProgressNilPageStaysNil(t *testing.T) {
	st, userID, titleID, chapterID := setupProgressFixture(t)

	require.NoError(t, st.UpsertProgressUnread(userID, titleID, chapterID, nil))

	p, err := st.GetProgress(userID, chapterID)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Nil(t, p.LastPage)
}

func TestProgressReadPinsLastPage(t *testing.T) {
	st, userID, titleID, chapterID := setupProgressFixture(t)

	require.NoError(t, st.UpsertProgressUnread(userID, titleID, chapterID, testutil.IntPtr(3)))
	require.NoError(t, st.UpsertProgressRead(userID, titleID, chapterID, 20))

	p, err := st.GetProgress(userID, chapterID)
	require.NoError(t, err)
	require.True(t, p.Read)
	require.Equal(t, 20, *p.LastPage)

	// Marking read twice is idempotent.
	require.NoError(t, st.UpsertProgressRead(userID, titleID, chapterID, 20))
	p, err = st.GetProgress(userID, chapterID)
	require.NoError(t, err)
	require.True(t, p.Read)
	require.Equal(t, 20, *p.LastPage)
}

func TestGetProgressByTitle(t *testing.T) {
	st, userID, titleID, chapterID := setupProgressFixture(t)
	second := testutil.CreateTestChapter(t, st, titleID, nil, "2", 18)

	require.NoError(t, st.UpsertProgressRead(userID, titleID, chapterID, 20))
	require.NoError(t, st.UpsertProgressUnread(userID, titleID, second.ID, testutil.IntPtr(4)))

	progress, err := st.GetProgressByTitle(userID, titleID)
	require.NoError(t, err)
	require.Len(t, progress, 2)
	require.True(t, progress[chapterID].Read)
	require.False(t, progress[second.ID].Read)
	require.Equal(t, 4, *progress[second.ID].LastPage)
}

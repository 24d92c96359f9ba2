package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/store"
	"github.com/harakki/comics-server/internal/testutil"
)

func TestDeletePublisherInUseConflicts(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	pub, err := st.CreatePublisher("Shogakukan", "JP")
	require.NoError(t, err)

	title := testutil.CreateTestTitle(t, st, "Frieren")
	title.PublisherID = &pub.ID
	require.NoError(t, st.UpdateTitle(title))

	err = st.DeletePublisher(pub.ID)
	require.ErrorIs(t, err, errs.ErrConflict)

	// Detaching the title frees the publisher for deletion.
	title.PublisherID = nil
	require.NoError(t, st.UpdateTitle(title))
	require.NoError(t, st.DeletePublisher(pub.ID))

	_, err = st.GetPublisherByID(pub.ID)
	require.ErrorIs(t, err, store.ErrPublisherNotFound)
}

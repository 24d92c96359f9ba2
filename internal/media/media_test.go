package media_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harakki/comics-server/internal/errs"
	"github.com/harakki/comics-server/internal/media"
	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
	"github.com/harakki/comics-server/internal/testutil"
)

func newService(t *testing.T) (*media.Service, *store.Store, *testutil.FakeBucket) {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	bucket := &testutil.FakeBucket{}
	return media.NewService(st, bucket), st, bucket
}

func TestRequestUploadIssuesPendingTicket(t *testing.T) {
	svc, st, _ := newService(t)

	ticket, err := svc.RequestUpload(context.Background(), "cover.png", "image/png")
	require.NoError(t, err)
	require.NotEmpty(t, ticket.MediaID)
	require.Contains(t, ticket.ObjectKey, "uploads/"+ticket.MediaID+"/cover.png")
	require.Contains(t, ticket.UploadURL, ticket.ObjectKey)

	m, err := st.GetMediaByID(ticket.MediaID)
	require.NoError(t, err)
	require.Equal(t, models.MediaPending, m.Status)
}

func TestRequestUploadSanitizesFileName(t *testing.T) {
	svc, _, _ := newService(t)

	ticket, err := svc.RequestUpload(context.Background(), "../../secret/cover.png", "image/png")
	require.NoError(t, err)
	require.Equal(t, "uploads/"+ticket.MediaID+"/cover.png", ticket.ObjectKey)

	_, err = svc.RequestUpload(context.Background(), "", "image/png")
	require.ErrorIs(t, err, errs.ErrInvalidRequest)

	// Only image objects may be uploaded.
	_, err = svc.RequestUpload(context.Background(), "a.html", "text/html")
	require.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestConfirmUploadFixesSlot(t *testing.T) {
	svc, _, _ := newService(t)

	ticket, err := svc.RequestUpload(context.Background(), "page.jpg", "image/jpeg")
	require.NoError(t, err)

	m, err := svc.ConfirmUpload(ticket.MediaID)
	require.NoError(t, err)
	require.Equal(t, models.MediaFixed, m.Status)

	_, err = svc.ConfirmUpload("no-such-id")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCleanupStaleReapsOnlyOldPending(t *testing.T) {
	svc, st, bucket := newService(t)

	stale, err := svc.RequestUpload(context.Background(), "old.png", "image/png")
	require.NoError(t, err)
	fresh, err := svc.RequestUpload(context.Background(), "new.png", "image/png")
	require.NoError(t, err)
	confirmed, err := svc.RequestUpload(context.Background(), "kept.png", "image/png")
	require.NoError(t, err)
	_, err = svc.ConfirmUpload(confirmed.MediaID)
	require.NoError(t, err)

	// Age the first upload past the cutoff.
	_, err = st.DB().Exec("UPDATE media SET created_at = ? WHERE id = ?",
		time.Now().Add(-2*time.Hour), stale.MediaID)
	require.NoError(t, err)

	n, err := svc.CleanupStale(context.Background(), time.Hour)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []string{stale.ObjectKey}, bucket.Deleted)

	_, err = st.GetMediaByID(stale.MediaID)
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = st.GetMediaByID(fresh.MediaID)
	require.NoError(t, err)
	_, err = st.GetMediaByID(confirmed.MediaID)
	require.NoError(t, err)
}

func TestDownloadURL(t *testing.T) {
	svc, _, _ := newService(t)

	ticket, err := svc.RequestUpload(context.Background(), "page.jpg", "image/jpeg")
	require.NoError(t, err)

	url, err := svc.DownloadURL(context.Background(), ticket.MediaID)
	require.NoError(t, err)
	require.Contains(t, url, ticket.ObjectKey)

	_, err = svc.DownloadURL(context.Background(), "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

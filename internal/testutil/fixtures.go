package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
	"github.com/harakki/comics-server/internal/util"
)

// CreateTestTitle inserts a minimal title and returns it.
func CreateTestTitle(t *testing.T, st *store.Store, name string) *models.Title {
	t.Helper()
	title, err := st.CreateTitle(&models.Title{
		Name:          name,
		Slug:          util.Slugify(name),
		Type:          models.TitleTypeManga,
		Status:        models.TitleStatusOngoing,
		ContentRating: models.RatingSafe,
	})
	if err != nil {
		t.Fatalf("Failed to create test title %q: %v", name, err)
	}
	return title
}

// CreateTestMedia inserts a fixed media record and returns its id.
func CreateTestMedia(t *testing.T, st *store.Store, fileName string) string {
	t.Helper()
	id := uuid.NewString()
	err := st.CreateMedia(&models.Media{
		ID:               id,
		ObjectKey:        fmt.Sprintf("uploads/%s/%s", id, fileName),
		OriginalFilename: fileName,
		ContentType:      "image/jpeg",
		Status:           models.MediaFixed,
		CreatedAt:        time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test media %q: %v", fileName, err)
	}
	return id
}

// CreateTestChapter inserts a chapter with the given number of pages,
// creating a media object per page.
func CreateTestChapter(t *testing.T, st *store.Store, titleID int64, volume *int, displayNumber string, pageCount int) *models.Chapter {
	t.Helper()
	mediaIDs := make([]string, pageCount)
	for i := range mediaIDs {
		mediaIDs[i] = CreateTestMedia(t, st, fmt.Sprintf("ch%s-p%03d.jpg", displayNumber, i+1))
	}
	chapter, err := st.CreateChapter(&models.Chapter{
		TitleID:       titleID,
		Volume:        volume,
		DisplayNumber: displayNumber,
	}, mediaIDs)
	if err != nil {
		t.Fatalf("Failed to create test chapter %q: %v", displayNumber, err)
	}
	return chapter
}

// IntPtr is a convenience for optional integer fields in test fixtures.
func IntPtr(n int) *int { return &n }

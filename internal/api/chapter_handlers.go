package api

import (
	"encoding/json"
	"net/http"

	"github.com/harakki/comics-server/internal/models"
	"github.com/harakki/comics-server/internal/store"
)

func (s *Server) handleListChapters(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	if _, err := s.store.GetTitleByID(titleID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	chapters, err := s.store.ListChaptersByTitle(titleID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if chapters == nil {
		chapters = []*models.Chapter{}
	}
	RespondWithJSON(w, http.StatusOK, chapters)
}

func (s *Server) handleGetChapter(w http.ResponseWriter, r *http.Request) {
	chapter, ok := s.chapterFromURL(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, chapter)
}

// handleListChapterPages resolves each page's media object to a
// presigned download URL so clients can fetch images directly from the
// bucket.
func (s *Server) handleListChapterPages(w http.ResponseWriter, r *http.Request) {
	chapter, ok := s.chapterFromURL(w, r)
	if !ok {
		return
	}
	pages, err := s.store.ListChapterPages(chapter.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	for _, p := range pages {
		url, err := s.media.DownloadURL(r.Context(), p.MediaID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		p.URL = url
	}
	if pages == nil {
		pages = []*models.ChapterPage{}
	}
	RespondWithJSON(w, http.StatusOK, pages)
}

func (s *Server) handleCreateChapter(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	if _, err := s.store.GetTitleByID(titleID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	var payload struct {
		Volume        *int     `json:"volume"`
		DisplayNumber string   `json:"display_number"`
		Name          string   `json:"name"`
		PageMediaIDs  []string `json:"page_media_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.DisplayNumber == "" {
		RespondWithError(w, http.StatusBadRequest, "display_number is required")
		return
	}
	chapter := &models.Chapter{
		TitleID:       titleID,
		Volume:        payload.Volume,
		DisplayNumber: payload.DisplayNumber,
		Name:          payload.Name,
	}
	created, err := s.store.CreateChapter(chapter, payload.PageMediaIDs)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	s.app.Hub().Publish("chapter_created", created)
	RespondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateChapter(w http.ResponseWriter, r *http.Request) {
	chapter, ok := s.chapterFromURL(w, r)
	if !ok {
		return
	}
	var payload struct {
		Volume        *int      `json:"volume"`
		DisplayNumber string    `json:"display_number"`
		Name          string    `json:"name"`
		PageMediaIDs  *[]string `json:"page_media_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.DisplayNumber == "" {
		RespondWithError(w, http.StatusBadRequest, "display_number is required")
		return
	}
	chapter.Volume = payload.Volume
	chapter.DisplayNumber = payload.DisplayNumber
	chapter.Name = payload.Name
	if err := s.store.UpdateChapterMetadata(chapter); err != nil {
		respondWithDomainError(w, err)
		return
	}
	if payload.PageMediaIDs != nil {
		dropped, err := s.store.ReplaceChapterPages(chapter.ID, *payload.PageMediaIDs)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		s.deleteOrphanedMedia(r, dropped)
	}
	updated, err := s.store.GetChapterByID(chapter.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	chapter, ok := s.chapterFromURL(w, r)
	if !ok {
		return
	}
	mediaIDs, err := s.store.DeleteChapter(chapter.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	s.deleteOrphanedMedia(r, mediaIDs)
	w.WriteHeader(http.StatusNoContent)
}

// chapterFromURL loads the chapter named in the URL and checks it
// belongs to the title named in the URL.
func (s *Server) chapterFromURL(w http.ResponseWriter, r *http.Request) (*models.Chapter, bool) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return nil, false
	}
	chapterID, ok := urlParamInt64(w, r, "chapterID")
	if !ok {
		return nil, false
	}
	if _, err := s.store.GetTitleByID(titleID); err != nil {
		respondWithDomainError(w, err)
		return nil, false
	}
	chapter, err := s.store.GetChapterByID(chapterID)
	if err != nil {
		respondWithDomainError(w, err)
		return nil, false
	}
	if chapter.TitleID != titleID {
		respondWithDomainError(w, store.ErrChapterNotFound)
		return nil, false
	}
	return chapter, true
}

// deleteOrphanedMedia best-effort removes objects no longer referenced
// by any chapter page. Failures are not surfaced to the client; the
// cleanup job will not touch FIXED media, so a leak here is permanent
// only until an operator deletes it.
func (s *Server) deleteOrphanedMedia(r *http.Request, mediaIDs []string) {
	for _, id := range mediaIDs {
		_ = s.media.Delete(r.Context(), id)
	}
}

package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// handleSetReadStatus records a read/unread mark for a chapter,
// optionally with the last page the user saw. The stored page position
// only ever moves forward.
func (s *Server) handleSetReadStatus(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	chapterID, ok := urlParamInt64(w, r, "chapterID")
	if !ok {
		return
	}

	var payload struct {
		IsRead     bool `json:"is_read"`
		LastPage   *int `json:"last_page_number"`
		ReadTimeMS *int `json:"read_time_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	progress, err := s.tracker.SetReadStatus(user.ID, titleID, chapterID, payload.IsRead, payload.LastPage)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if payload.IsRead {
		if err := s.analytics.RecordChapterRead(user.ID, chapterID, payload.ReadTimeMS); err != nil {
			log.Printf("Failed to record read of chapter %d: %v", chapterID, err)
		}
	}
	s.app.Hub().Publish("progress_updated", progress)
	RespondWithJSON(w, http.StatusOK, progress)
}

// handleGetReadStatus reports the user's progress for a chapter. A
// chapter never touched reads as unread.
func (s *Server) handleGetReadStatus(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	chapterID, ok := urlParamInt64(w, r, "chapterID")
	if !ok {
		return
	}

	progress, err := s.tracker.GetReadStatus(user.ID, titleID, chapterID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, progress)
}

// handleGetNextChapter returns the first chapter, in reading order,
// that the user has not finished.
func (s *Server) handleGetNextChapter(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}

	next, err := s.tracker.GetNextChapter(user.ID, titleID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, next)
}

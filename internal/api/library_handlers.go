package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/harakki/comics-server/internal/models"
)

func validReadingStatus(s models.ReadingStatus) bool {
	switch s {
	case models.StatusToRead, models.StatusReading, models.StatusOnHold,
		models.StatusDropped, models.StatusCompleted, models.StatusReReading:
		return true
	}
	return false
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var status *models.ReadingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := models.ReadingStatus(raw)
		if !validReadingStatus(st) {
			RespondWithError(w, http.StatusBadRequest, "Invalid reading status")
			return
		}
		status = &st
	}

	entries, err := s.store.ListLibraryEntries(user.ID, status)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.LibraryEntry{}
	}
	RespondWithJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetLibraryEntry(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	entry, err := s.store.GetLibraryEntry(user.ID, titleID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, entry)
}

func (s *Server) handleAddLibraryEntry(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload struct {
		TitleID int64                `json:"title_id"`
		Status  models.ReadingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Status == "" {
		payload.Status = models.StatusToRead
	}
	if !validReadingStatus(payload.Status) {
		RespondWithError(w, http.StatusBadRequest, "Invalid reading status")
		return
	}
	if _, err := s.store.GetTitleByID(payload.TitleID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	entry, err := s.store.AddLibraryEntry(user.ID, payload.TitleID, payload.Status)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if err := s.analytics.RecordLibraryChange(user.ID, payload.TitleID, true); err != nil {
		log.Printf("Failed to record library add for title %d: %v", payload.TitleID, err)
	}
	s.app.Hub().Publish("library_entry_added", entry)
	RespondWithJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUpdateLibraryEntry(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}

	var payload struct {
		Status models.ReadingStatus `json:"status"`
		Rating *int                 `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !validReadingStatus(payload.Status) {
		RespondWithError(w, http.StatusBadRequest, "Invalid reading status")
		return
	}
	if payload.Rating != nil && (*payload.Rating < 1 || *payload.Rating > 10) {
		RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 10")
		return
	}

	entry, err := s.store.UpdateLibraryEntry(user.ID, titleID, payload.Status, payload.Rating)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if payload.Rating != nil {
		if err := s.analytics.RecordRating(user.ID, titleID, *payload.Rating); err != nil {
			log.Printf("Failed to record rating for title %d: %v", titleID, err)
		}
	}
	RespondWithJSON(w, http.StatusOK, entry)
}

func (s *Server) handleRemoveLibraryEntry(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	if err := s.store.RemoveLibraryEntry(user.ID, titleID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	if err := s.analytics.RecordLibraryChange(user.ID, titleID, false); err != nil {
		log.Printf("Failed to record library removal for title %d: %v", titleID, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

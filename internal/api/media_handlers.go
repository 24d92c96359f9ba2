package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleRequestUpload issues a presigned PUT URL for a new object. The
// slot stays pending until confirmed.
func (s *Server) handleRequestUpload(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	ticket, err := s.media.RequestUpload(r.Context(), payload.FileName, payload.ContentType)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, ticket)
}

func (s *Server) handleConfirmUpload(w http.ResponseWriter, r *http.Request) {
	m, err := s.media.ConfirmUpload(chi.URLParam(r, "mediaID"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, m)
}

func (s *Server) handleMediaDownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.media.DownloadURL(r.Context(), chi.URLParam(r, "mediaID"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := s.media.Delete(r.Context(), chi.URLParam(r, "mediaID")); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

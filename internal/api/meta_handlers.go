package api

// Handlers for the reference entities: tags, authors and publishers.

import (
	"encoding/json"
	"net/http"

	"github.com/harakki/comics-server/internal/models"
)

type namePayload struct {
	Name string `json:"name"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags()
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if tags == nil {
		tags = []*models.Tag{}
	}
	RespondWithJSON(w, http.StatusOK, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	tag, err := s.store.CreateTag(payload.Name)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := urlParamInt64(w, r, "tagID")
	if !ok {
		return
	}
	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	tag, err := s.store.UpdateTag(tagID, payload.Name)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := urlParamInt64(w, r, "tagID")
	if !ok {
		return
	}
	if err := s.store.DeleteTag(tagID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := s.store.ListAuthors()
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if authors == nil {
		authors = []*models.Author{}
	}
	RespondWithJSON(w, http.StatusOK, authors)
}

func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	author, err := s.store.CreateAuthor(payload.Name, payload.Bio)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, author)
}

func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := urlParamInt64(w, r, "authorID")
	if !ok {
		return
	}
	var payload struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	author, err := s.store.UpdateAuthor(authorID, payload.Name, payload.Bio)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, author)
}

func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, ok := urlParamInt64(w, r, "authorID")
	if !ok {
		return
	}
	if err := s.store.DeleteAuthor(authorID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPublishers(w http.ResponseWriter, r *http.Request) {
	publishers, err := s.store.ListPublishers()
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if publishers == nil {
		publishers = []*models.Publisher{}
	}
	RespondWithJSON(w, http.StatusOK, publishers)
}

func (s *Server) handleCreatePublisher(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	publisher, err := s.store.CreatePublisher(payload.Name, payload.CountryCode)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, publisher)
}

func (s *Server) handleUpdatePublisher(w http.ResponseWriter, r *http.Request) {
	publisherID, ok := urlParamInt64(w, r, "publisherID")
	if !ok {
		return
	}
	var payload struct {
		Name        string `json:"name"`
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	publisher, err := s.store.UpdatePublisher(publisherID, payload.Name, payload.CountryCode)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, publisher)
}

func (s *Server) handleDeletePublisher(w http.ResponseWriter, r *http.Request) {
	publisherID, ok := urlParamInt64(w, r, "publisherID")
	if !ok {
		return
	}
	if err := s.store.DeletePublisher(publisherID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harakki/comics-server/internal/catalog"
	"github.com/harakki/comics-server/internal/models"
)

// handleSearchTitles runs a faceted catalog search. All filter,
// sorting and paging parameters come from the query string.
func (s *Server) handleSearchTitles(w http.ResponseWriter, r *http.Request) {
	opts, err := catalog.ParseSearchCriteria(r.URL.Query())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	page, err := s.catalog.Search(opts)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	title, err := s.store.GetTitleByID(titleID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	s.recordTitleView(r, title.ID)
	RespondWithJSON(w, http.StatusOK, title)
}

func (s *Server) handleGetTitleBySlug(w http.ResponseWriter, r *http.Request) {
	title, err := s.store.GetTitleBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	s.recordTitleView(r, title.ID)
	RespondWithJSON(w, http.StatusOK, title)
}

// recordTitleView logs the view without affecting the response.
func (s *Server) recordTitleView(r *http.Request, titleID int64) {
	user := getUserFromContext(r)
	if user == nil {
		return
	}
	if err := s.analytics.RecordTitleView(user.ID, titleID); err != nil {
		log.Printf("Failed to record view of title %d: %v", titleID, err)
	}
}

func (s *Server) handleCreateTitle(w http.ResponseWriter, r *http.Request) {
	var in catalog.NewTitleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	title, err := s.catalog.CreateTitle(in)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	s.app.Hub().Publish("title_created", title)
	RespondWithJSON(w, http.StatusCreated, title)
}

func (s *Server) handleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	var in catalog.NewTitleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	title, err := s.catalog.UpdateTitle(titleID, in)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, title)
}

func (s *Server) handleReplaceTitleSlug(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	var payload struct {
		Slug string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	title, err := s.catalog.ReplaceSlug(titleID, payload.Slug)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, title)
}

func (s *Server) handleDeleteTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	if err := s.store.DeleteTitle(titleID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTitleAuthor(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	var payload struct {
		AuthorID int64             `json:"author_id"`
		Role     models.AuthorRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Role != models.RoleStory && payload.Role != models.RoleArt {
		RespondWithError(w, http.StatusBadRequest, "Invalid author role")
		return
	}
	if err := s.store.AddTitleAuthor(titleID, payload.AuthorID, payload.Role); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveTitleAuthor(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	authorID, ok := urlParamInt64(w, r, "authorID")
	if !ok {
		return
	}
	if err := s.store.RemoveTitleAuthor(titleID, authorID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

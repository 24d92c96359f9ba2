package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harakki/comics-server/internal/models"
)

type collectionPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	cols, err := s.collections.ListOwn(user.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if cols == nil {
		cols = []*models.Collection{}
	}
	RespondWithJSON(w, http.StatusOK, cols)
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	var payload collectionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	col, err := s.collections.Create(user.ID, payload.Name, payload.Description, payload.IsPublic)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, col)
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	collectionID, ok := urlParamInt64(w, r, "collectionID")
	if !ok {
		return
	}
	col, err := s.collections.Get(user.ID, collectionID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, col)
}

func (s *Server) handleUpdateCollection(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	collectionID, ok := urlParamInt64(w, r, "collectionID")
	if !ok {
		return
	}
	var payload collectionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	col, err := s.collections.Update(user.ID, collectionID, payload.Name, payload.Description, payload.IsPublic)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, col)
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	collectionID, ok := urlParamInt64(w, r, "collectionID")
	if !ok {
		return
	}
	if err := s.collections.Delete(user.ID, collectionID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCollectionTitle(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	collectionID, ok := urlParamInt64(w, r, "collectionID")
	if !ok {
		return
	}
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	if err := s.collections.AddTitle(user.ID, collectionID, titleID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveCollectionTitle(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	collectionID, ok := urlParamInt64(w, r, "collectionID")
	if !ok {
		return
	}
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	if err := s.collections.RemoveTitle(user.ID, collectionID, titleID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateShareToken(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	collectionID, ok := urlParamInt64(w, r, "collectionID")
	if !ok {
		return
	}
	token, err := s.collections.GenerateShareToken(user.ID, collectionID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, map[string]string{"share_token": token})
}

func (s *Server) handleRevokeShareToken(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	collectionID, ok := urlParamInt64(w, r, "collectionID")
	if !ok {
		return
	}
	if err := s.collections.RevokeShareToken(user.ID, collectionID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResolveShareToken serves a shared collection to anonymous
// visitors. Knowing the token is the only requirement.
func (s *Server) handleResolveShareToken(w http.ResponseWriter, r *http.Request) {
	col, err := s.collections.Resolve(chi.URLParam(r, "token"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, col)
}

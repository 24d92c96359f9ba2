package api

import (
	"encoding/json"
	"net/http"
)

// handleVoteTitle stores the user's like or dislike for a title. A new
// vote replaces the previous one.
func (s *Server) handleVoteTitle(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	var payload struct {
		Liked bool `json:"liked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := s.analytics.RecordVote(user.ID, titleID, payload.Liked); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTitleAnalytics(w http.ResponseWriter, r *http.Request) {
	titleID, ok := urlParamInt64(w, r, "titleID")
	if !ok {
		return
	}
	stats, err := s.analytics.TitleAnalytics(titleID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	stats, err := s.analytics.UserStats(user.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}

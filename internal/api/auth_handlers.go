package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/harakki/comics-server/internal/auth"
)

const (
	sessionCookieName = "session_token"
	sessionTTL        = 7 * 24 * time.Hour
)

func writeSessionCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expires,
		MaxAge:   maxAge,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// handleLogin verifies credentials and opens a session. Unknown user
// and wrong password produce the same response.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := s.store.GetUserByUsername(payload.Username)
	if err != nil || !auth.VerifyPassword(payload.Password, user.PasswordHash) {
		RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := s.store.CreateSession(user.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	writeSessionCookie(w, r, token, time.Now().Add(sessionTTL), 0)
	RespondWithJSON(w, http.StatusOK, user)
}

// handleLogout drops the server-side session and expires the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.store.DeleteSession(cookie.Value)
	}
	writeSessionCookie(w, r, "", time.Unix(0, 0), -1)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, getUserFromContext(r))
}

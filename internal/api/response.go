// Helper functions for sending standardized JSON responses.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harakki/comics-server/internal/errs"
)

// RespondWithJSON writes a JSON response with the given status code and payload.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithError writes a standardized JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithDomainError maps a service error onto its HTTP status via
// the error taxonomy sentinels. Unclassified errors become a 500 with a
// generic message so internals never leak.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidRequest):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrConflict):
		RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

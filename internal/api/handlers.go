package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// urlParamInt64 parses a chi URL parameter as an int64 id. It writes a
// 400 response and returns false when the parameter is malformed.
func urlParamInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

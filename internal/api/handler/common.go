package handler

import (
	"net/http"
	"strconv"

	"client_portal/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

func userIDFrom(r *http.Request) (string, bool) {
	return middleware.GetUserIDFromContext(r.Context())
}

func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// pathID parses a numeric id route parameter. ok is false for anything
// that is not a positive integer.
func pathID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

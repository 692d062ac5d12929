package http

import (
	"net/http"
	"strings"
)

// userHeader carries the identity of the requester on every endpoint
// that acts on behalf of a user.
const userHeader = "X-Sharer-User-Id"

func requesterID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(userHeader))
	return id, id != ""
}

func requireRequester(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := requesterID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, codeMissingUserHeader, userHeader+" header required")
	}
	return id, ok
}

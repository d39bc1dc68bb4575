package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListUsers returns the names of all stored users.
func ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext()
	defer cancel()

	names, err := repo.ListUserNames(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// GetUser returns the full document for the named user, creating an empty
// one on first access.
func GetUser(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "user")

	ctx, cancel := storeContext()
	defer cancel()

	user, err := repo.GetOrCreateUser(ctx, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

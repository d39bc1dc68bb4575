package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studytrack/studytrack-backend/internal/models"
	"github.com/studytrack/studytrack-backend/internal/repository"
)

// GetSubjects returns the user's subjects, or [] when the user does not
// exist. Never creates the user.
func GetSubjects(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "user")

	ctx, cancel := storeContext()
	defer cancel()

	subjects, err := repo.GetSubjects(ctx, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

// ReplaceSubjects overwrites the user's entire subjects array with the
// request body, creating the user when absent, and returns the stored array.
func ReplaceSubjects(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "user")

	var subjects []models.Subject
	if err := json.NewDecoder(r.Body).Decode(&subjects); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	stored, err := repo.ReplaceSubjects(ctx, name, subjects)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// DeleteSubject removes every subject matching the path id and returns the
// remaining subjects. 404 when the user does not exist.
func DeleteSubject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "user")
	id := chi.URLParam(r, "id")

	ctx, cancel := storeContext()
	defer cancel()

	remaining, err := repo.DeleteSubject(ctx, name, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, remaining)
}

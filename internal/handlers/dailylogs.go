package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
)

// GetDailyLogs returns the user's daily logs, or [] when the user does not
// exist. Never creates the user.
func GetDailyLogs(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "user")

	ctx, cancel := storeContext()
	defer cancel()

	logs, err := repo.GetDailyLogs(ctx, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// ReplaceDailyLogs overwrites the user's entire dailylogs array with the
// request body, creating the user when absent, and returns the stored array.
// Log records are opaque; nothing in them is validated or interpreted.
func ReplaceDailyLogs(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "user")

	var logs []bson.M
	if err := json.NewDecoder(r.Body).Decode(&logs); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	stored, err := repo.ReplaceDailyLogs(ctx, name, logs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

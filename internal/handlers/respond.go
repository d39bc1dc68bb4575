package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/studytrack/studytrack-backend/internal/repository"
)

var repo *repository.UserRepository

// Init wires the user repository used by every handler in this package.
// Called once from main after the store connection is established.
func Init(r *repository.UserRepository) {
	repo = r
}

const storeTimeout = 5 * time.Second

// storeContext returns the context for a store round trip. It is detached
// from the request context on purpose: a client dropping its connection
// must not abort an in-flight write.
func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

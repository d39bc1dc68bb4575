package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/studytrack/studytrack-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Users
	r.Get("/api/users", handlers.ListUsers)
	r.Get("/api/{user}", handlers.GetUser)

	// Subjects (whole-array replacement, no partial updates)
	r.Get("/api/{user}/subjects", handlers.GetSubjects)
	r.Post("/api/{user}/subjects", handlers.ReplaceSubjects)
	r.Delete("/api/{user}/subjects/{id}", handlers.DeleteSubject)

	// Daily logs (whole-array replacement, records are opaque)
	r.Get("/api/{user}/dailylogs", handlers.GetDailyLogs)
	r.Post("/api/{user}/dailylogs", handlers.ReplaceDailyLogs)
}

package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/studytrack/studytrack-backend/internal/config"
	"github.com/studytrack/studytrack-backend/internal/database"
	"github.com/studytrack/studytrack-backend/internal/handlers"
	"github.com/studytrack/studytrack-backend/internal/middleware"
	"github.com/studytrack/studytrack-backend/internal/repository"
	"github.com/studytrack/studytrack-backend/internal/routes"
	"github.com/studytrack/studytrack-backend/internal/seed"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Phase 1: establish the store and seed. The server must not accept a
	// single request until this phase completes; any failure here is fatal.
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect()

	ctx := context.Background()
	if err := database.EnsureUserIndexes(ctx); err != nil {
		log.Fatal("Failed to ensure user indexes: ", err)
	}
	log.Println("✅ User indexes ensured")

	repo := repository.New()
	handlers.Init(repo)

	if err := seed.EnsureDemoUsers(ctx, repo); err != nil {
		log.Fatal("Failed to seed demo users: ", err)
	}
	log.Println("✅ Demo users initialized")

	// Phase 2: build the router and listen.
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Rate limiting needs Redis; run without it when no URI is configured.
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		defer database.DisconnectRedis()
		r.Use(middleware.RateLimit)
		log.Println("✅ Per-IP rate limiting enabled")
	} else {
		log.Println("REDIS_URI not set, rate limiting disabled")
	}

	// Health check (no store round trip)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Printf("🚀 studytrack backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

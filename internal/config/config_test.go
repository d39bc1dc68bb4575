package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("REDIS_URI", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ENV", "")

	cfg := Load()

	if cfg.MongoURI != "mongodb://localhost:27017/studytrack" {
		t.Errorf("MongoURI = %s, want local default", cfg.MongoURI)
	}
	if cfg.RedisURI != "" {
		t.Errorf("RedisURI = %s, want empty (rate limiting off)", cfg.RedisURI)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db.example.com:27017/tracker")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://www.example.com")
	t.Setenv("ENV", "Production")

	cfg := Load()

	if cfg.MongoURI != "mongodb://db.example.com:27017/tracker" {
		t.Errorf("MongoURI = %s", cfg.MongoURI)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://www.example.com" {
		t.Errorf("AllowedOrigins = %v, want two trimmed origins", cfg.AllowedOrigins)
	}
	if !cfg.IsProduction() {
		t.Error("ENV=Production should report production")
	}
}

func TestMongoURIFallback(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGO_URI", "mongodb://fallback:27017/studytrack")

	cfg := Load()
	if cfg.MongoURI != "mongodb://fallback:27017/studytrack" {
		t.Errorf("MongoURI = %s, want MONGO_URI fallback", cfg.MongoURI)
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries everything read from the environment. Loaded once in main
// and handed to the pieces that need it.
type Config struct {
	Port           string
	DatabaseURL    string // postgres DSN; when empty the sqlite fallback is used
	SQLitePath     string
	IdentityURL    string // external identity endpoint; when empty dev JWT mode is used
	JWTSecret      string
	AllowedOrigins []string
	TokenCacheTTL  time.Duration
	IsDevelopment  bool
}

func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getenv("SQLITE_PATH", "flashdeck.db"),
		IdentityURL:   os.Getenv("IDENTITY_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenCacheTTL: 60 * time.Second,
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if ttl := os.Getenv("TOKEN_CACHE_TTL"); ttl != "" {
		if secs, err := strconv.Atoi(ttl); err == nil && secs >= 0 {
			cfg.TokenCacheTTL = time.Duration(secs) * time.Second
		}
	}

	// No identity endpoint configured means we're in development
	cfg.IsDevelopment = cfg.IdentityURL == ""

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

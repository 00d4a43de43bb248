package main

import (
	"errors"
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/flashdeck/flashdeck-api/auth"
	"github.com/flashdeck/flashdeck-api/config"
	"github.com/flashdeck/flashdeck-api/handlers"
	"github.com/flashdeck/flashdeck-api/middleware"
	"github.com/flashdeck/flashdeck-api/store"
)

func main() {
	seedFlag := flag.Bool("seed", false, "load the sample deck for SEED_USER_ID and exit")
	flag.Parse()

	// Load .env file if present; deployed environments set real env vars
	_ = godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg.IsDevelopment)

	db, err := config.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	st := store.New(db)

	if *seedFlag {
		ownerID := os.Getenv("SEED_USER_ID")
		if ownerID == "" {
			ownerID = "dev-user"
		}
		if err := seedDatabase(st, ownerID, logger); err != nil {
			logger.Fatal().Err(err).Msg("seeding failed")
		}
		return
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("auth configuration invalid")
	}

	h := &handlers.Handler{Store: st, Logger: logger}

	api := http.NewServeMux()

	// Flashcards
	api.HandleFunc("GET /api/flashcards", h.ListFlashcards)
	api.HandleFunc("GET /api/flashcards/search", h.SearchFlashcards)
	api.HandleFunc("GET /api/flashcards/{id}", h.GetFlashcard)
	api.HandleFunc("POST /api/flashcards", h.CreateFlashcard)
	api.HandleFunc("PUT /api/flashcards/{id}", h.UpdateFlashcard)
	api.HandleFunc("DELETE /api/flashcards/{id}", h.DeleteFlashcard)
	api.HandleFunc("DELETE /api/flashcards", h.DeleteAllFlashcards)

	// Tags
	api.HandleFunc("GET /api/tags", h.ListTags)
	api.HandleFunc("POST /api/tags", h.CreateTag)
	api.HandleFunc("PUT /api/tags/{id}", h.UpdateTag)
	api.HandleFunc("DELETE /api/tags/{id}", h.DeleteTag)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/healthz", h.Healthz)
	mux.Handle("/api/", middleware.RequireAuth(verifier, logger)(api))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.OwnerHeader, "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(logger)(mux))

	addr := "0.0.0.0:" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

var errMissingSecret = errors.New("set IDENTITY_URL or JWT_SECRET")

// newVerifier picks the token verifier: the external identity endpoint when
// configured, a local HS256 verifier for development otherwise.
func newVerifier(cfg config.Config) (auth.Verifier, error) {
	if cfg.IdentityURL != "" {
		return auth.NewRemoteVerifier(cfg.IdentityURL, cfg.TokenCacheTTL), nil
	}
	if cfg.JWTSecret == "" {
		return nil, errMissingSecret
	}
	return auth.NewLocalVerifier(cfg.JWTSecret), nil
}

func newLogger(development bool) zerolog.Logger {
	if development {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

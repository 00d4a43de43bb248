package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flashdeck/flashdeck-api/auth"
	"github.com/flashdeck/flashdeck-api/config"
	"github.com/flashdeck/flashdeck-api/handlers"
	"github.com/flashdeck/flashdeck-api/middleware"
	"github.com/flashdeck/flashdeck-api/store"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(_ context.Context, token string) (string, error) {
	if subject, ok := s[token]; ok {
		return subject, nil
	}
	return "", auth.ErrInvalidToken
}

// newTestAPI wires the real mux the way main does, backed by an in-memory
// database. Tokens "<owner>-token" authenticate as "<owner>".
func newTestAPI(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	st := store.New(db)
	h := &handlers.Handler{Store: st, Logger: zerolog.Nop()}

	api := http.NewServeMux()
	api.HandleFunc("GET /api/flashcards", h.ListFlashcards)
	api.HandleFunc("GET /api/flashcards/search", h.SearchFlashcards)
	api.HandleFunc("GET /api/flashcards/{id}", h.GetFlashcard)
	api.HandleFunc("POST /api/flashcards", h.CreateFlashcard)
	api.HandleFunc("PUT /api/flashcards/{id}", h.UpdateFlashcard)
	api.HandleFunc("DELETE /api/flashcards/{id}", h.DeleteFlashcard)
	api.HandleFunc("DELETE /api/flashcards", h.DeleteAllFlashcards)
	api.HandleFunc("GET /api/tags", h.ListTags)
	api.HandleFunc("POST /api/tags", h.CreateTag)
	api.HandleFunc("PUT /api/tags/{id}", h.UpdateTag)
	api.HandleFunc("DELETE /api/tags/{id}", h.DeleteTag)

	verifier := stubVerifier{"alice-token": "alice", "bob-token": "bob"}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/healthz", h.Healthz)
	mux.Handle("/api/", middleware.RequireAuth(verifier, zerolog.Nop())(api))

	return mux, st
}

// do issues a request as owner; an empty owner sends no credentials.
func do(t *testing.T, handler http.Handler, method, path, owner, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set(middleware.OwnerHeader, owner)
		req.Header.Set("Authorization", "Bearer "+owner+"-token")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type errorBody struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

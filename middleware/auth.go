package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/flashdeck/flashdeck-api/auth"
	"github.com/rs/zerolog"
)

type contextKey string

const ownerKey contextKey = "owner"

// OwnerHeader names the caller's identity; the bearer token must validate to
// the same subject.
const OwnerHeader = "X-User-ID"

// RequireAuth gates every API route. A request needs the owner header and a
// bearer token the verifier accepts for that same subject; anything else is
// answered with 401 before any handler runs.
func RequireAuth(verifier auth.Verifier, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := r.Header.Get(OwnerHeader)
			if ownerID == "" {
				unauthenticated(w)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				unauthenticated(w)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				unauthenticated(w)
				return
			}

			subject, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Debug().Err(err).Msg("token validation failed")
				unauthenticated(w)
				return
			}
			if subject != ownerID {
				logger.Warn().Str("owner", ownerID).Msg("token subject does not match owner header")
				unauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerID returns the authenticated owner attached by RequireAuth.
func OwnerID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(ownerKey).(string)
	return id, ok && id != ""
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Not authenticated"})
}

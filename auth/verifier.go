// Package auth validates bearer tokens. Production validation is delegated
// to an external identity endpoint; development mode verifies locally signed
// JWTs instead.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ErrInvalidToken covers every way a token can fail validation: rejected by
// the identity endpoint, malformed, expired, or carrying no subject.
var ErrInvalidToken = errors.New("invalid token")

// Verifier checks a bearer token and returns the subject it belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// RemoteVerifier validates tokens against an external identity endpoint with
// one GET per token. Successful validations are cached for a short TTL so a
// burst of requests from the same client does not hammer the endpoint; the
// result is idempotent for the token's lifetime.
type RemoteVerifier struct {
	endpoint string
	client   *http.Client
	ttl      time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

type cacheEntry struct {
	subject string
	expires time.Time
}

func NewRemoteVerifier(endpoint string, ttl time.Duration) *RemoteVerifier {
	return &RemoteVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		ttl:      ttl,
		cache:    make(map[string]cacheEntry),
		now:      time.Now,
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (string, error) {
	if subject, ok := v.cached(token); ok {
		return subject, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidToken
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", ErrInvalidToken
	}

	subject := subjectFromPayload(payload)
	if subject == "" {
		return "", ErrInvalidToken
	}

	v.store(token, subject)
	return subject, nil
}

// subjectFromPayload pulls the user id out of the identity response. The
// endpoint may encode it as a string or a number.
func subjectFromPayload(payload map[string]any) string {
	switch id := payload["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

func (v *RemoteVerifier) cached(token string) (string, bool) {
	if v.ttl <= 0 {
		return "", false
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.cache[token]
	if !ok || v.now().After(entry.expires) {
		delete(v.cache, token)
		return "", false
	}
	return entry.subject, true
}

func (v *RemoteVerifier) store(token, subject string) {
	if v.ttl <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	for key, entry := range v.cache {
		if now.After(entry.expires) {
			delete(v.cache, key)
		}
	}
	v.cache[token] = cacheEntry{subject: subject, expires: now.Add(v.ttl)}
}

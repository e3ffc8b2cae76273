package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/config"
	"github.com/JonMunkholm/accreditation-console/internal/core"
)

// APIKeyCookie carries the console key for browser sessions, where HTMX
// requests cannot be relied on to add the header.
const APIKeyCookie = "console_api_key"

// APIKeyAuth returns middleware that validates the X-API-Key header (or the
// console cookie) against configured keys and records the key's name as the
// audit actor.
//
// Keys are configured as "name:secret" or bare secrets; a bare secret's actor
// is "api-key". If RequireAPIKey is false, all requests pass through.
// If RequireAPIKey is true but no keys are configured, all requests are rejected.
func APIKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	keys := parseKeys(cfg.APIKeys)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				if c, err := r.Cookie(APIKeyCookie); err == nil {
					apiKey = c.Value
				}
			}
			if apiKey == "" {
				slog.Warn("auth: missing API key",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"missing API key","code":"AUTH_MISSING_KEY"}`, http.StatusUnauthorized)
				return
			}

			actor, ok := matchAPIKey(apiKey, keys)
			if !ok {
				slog.Warn("auth: invalid API key",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, `{"error":"invalid API key","code":"AUTH_INVALID_KEY"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(core.ContextWithActor(r.Context(), actor)))
		})
	}
}

type namedKey struct {
	name   string
	secret []byte
}

func parseKeys(raw []string) []namedKey {
	keys := make([]namedKey, 0, len(raw))
	for _, k := range raw {
		name, secret, found := strings.Cut(k, ":")
		if !found {
			name, secret = "api-key", k
		}
		keys = append(keys, namedKey{name: name, secret: []byte(secret)})
	}
	return keys
}

// matchAPIKey checks the provided key against every configured key in
// constant time and returns the matching key's name.
func matchAPIKey(key string, keys []namedKey) (string, bool) {
	actor := ""
	valid := 0
	for _, k := range keys {
		if subtle.ConstantTimeCompare([]byte(key), k.secret) == 1 {
			valid = 1
			actor = k.name
		}
	}
	return actor, valid == 1
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const ClaimsKey contextKey = "api_key_claims"

// RequireRoomKey is a chi middleware accepting a key from the access_token query
// parameter or an "Authorization: Bearer" header. The key must grant the {id} room
// of the route.
func RequireRoomKey(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.URL.Query().Get("access_token"))
			if key == "" {
				key = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			}
			if key == "" {
				http.Error(w, "missing access_token", http.StatusUnauthorized)
				return
			}
			claims, err := ValidateToken(secret, key)
			if err != nil {
				http.Error(w, "invalid or expired api key", http.StatusUnauthorized)
				return
			}
			if room := chi.URLParam(r, "id"); room != "" && !claims.Allows(room) {
				http.Error(w, "api key is not valid for this room", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ClaimsKey, claims)))
		})
	}
}

// ClaimsFromContext returns the claims installed by RequireRoomKey.
func ClaimsFromContext(ctx context.Context) (*APIKeyClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*APIKeyClaims)
	return claims, ok
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taskloop/taskloop-go/internal/token"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller extracted from an access token.
type Identity struct {
	UserID string
	Email  string
}

// BearerAuth returns middleware that validates the access token from the
// Authorization header and stamps the caller's identity on the context.
func BearerAuth(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			raw, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || raw == "" {
				writeAuthError(w, "invalid authorization format")
				return
			}

			claims, err := tokens.VerifyAccess(raw)
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			identity := Identity{UserID: claims.UserID, Email: claims.Email}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request
// context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

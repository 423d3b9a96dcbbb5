package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/ranaIslam01/server/pkg/errors"
)

type contextKeyType string

const identityKey contextKeyType = "identity"

// TokenCookieName is the cookie the token issuer sets on login/registration.
// The guard accepts the token from this cookie or from the Authorization header.
const TokenCookieName = "jwt"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
}

// TokenValidator verifies a raw token string and returns the user ID it
// carries. Services inject their own JWT validation logic.
type TokenValidator func(token string) (string, error)

// UserResolver resolves a user ID to a live identity. It returns
// apperrors.ErrNotFound when the user no longer exists.
type UserResolver func(ctx context.Context, userID string) (*Identity, error)

// Auth gates protected routes. It extracts the token (Authorization header
// or cookie), validates it, resolves the embedded user ID to a live user
// record, and attaches the identity to the request context. Rejected
// requests never reach the next handler, so they cause no side effects.
func Auth(validate TokenValidator, resolve UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeAuthError(w, "UNAUTHORIZED", "missing authentication token")
				return
			}

			userID, err := validate(token)
			if err != nil {
				writeAuthError(w, "UNAUTHORIZED", "invalid or expired token")
				return
			}

			identity, err := resolve(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					writeAuthError(w, "USER_NOT_FOUND", "token does not resolve to a known user")
					return
				}
				writeAuthError(w, "UNAUTHORIZED", "could not resolve user identity")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin checks that the authenticated identity has the admin flag.
// It must be mounted after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity == nil || !identity.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "FORBIDDEN",
				"message": "insufficient permissions",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext extracts the authenticated identity from the request
// context. Returns nil outside protected routes.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey).(*Identity); ok {
		return id
	}
	return nil
}

// WithIdentity returns a context carrying the given identity. Intended for
// handler tests that bypass the middleware.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// extractToken pulls the token from the Authorization header, falling back
// to the token cookie set at login.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

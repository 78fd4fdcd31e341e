package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tasknest/api/internal/httputil"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const identityContextKey ContextKey = "identity"

// Middleware guards protected routes. A request passes only when it
// carries a valid bearer token whose subject resolves to an existing
// user.
type Middleware struct {
	tokenService TokenService
	resolver     UserResolver
}

func NewMiddleware(tokenService TokenService, resolver UserResolver) *Middleware {
	return &Middleware{tokenService: tokenService, resolver: resolver}
}

// RequireAuth validates the bearer token and resolves the caller.
// Every rejection produces the identical generic 401 body so the
// response never reveals whether the token was missing, malformed,
// expired, or pointed at a user that no longer exists.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondUnauthenticated(w)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondUnauthenticated(w)
			return
		}

		claims, err := m.tokenService.VerifyToken(parts[1])
		if err != nil {
			respondUnauthenticated(w)
			return
		}

		identity, err := m.resolver.ResolveUser(r.Context(), claims.UserID)
		if err != nil {
			respondUnauthenticated(w)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func respondUnauthenticated(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "authentication required", httputil.CodeUnauthenticated, http.StatusUnauthorized)
}

// IdentityFromContext extracts the authenticated identity from the request context
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

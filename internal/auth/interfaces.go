package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenService defines the interface for token creation and validation.
// PasetoService (PASETO v4.local) is the production implementation.
type TokenService interface {
	CreateToken(userID uuid.UUID) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserResolver resolves a token subject to a live identity. The user
// service implements it against the credential store; CachedResolver
// decorates it with a redis read-through cache.
type UserResolver interface {
	ResolveUser(ctx context.Context, id uuid.UUID) (Identity, error)
}

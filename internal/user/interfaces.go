package user

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations the service needs.
// Repository is the production implementation backed by Postgres.
type Store interface {
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

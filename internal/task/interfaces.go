package task

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations the service needs.
// Repository is the production implementation backed by Postgres.
type Store interface {
	Insert(ctx context.Context, in CreateInput) (*Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	Find(ctx context.Context, f Filter, limit, offset int) ([]*Task, error)
	Count(ctx context.Context, f Filter) (int, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Task, error)
	Delete(ctx context.Context, id uuid.UUID) (*Task, error)
}

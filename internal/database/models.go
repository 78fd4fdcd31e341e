package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for a registered account.
// The email column carries a unique index; uniqueness is enforced
// by the store, not by application code.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,nullzero,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Task is the database model for a work item. AssignedUserID references
// a user but carries no ownership semantics.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID             uuid.UUID  `bun:"id,pk,type:uuid,nullzero,default:gen_random_uuid()"`
	Title          string     `bun:"title,notnull"`
	Description    string     `bun:"description"`
	Status         string     `bun:"status,nullzero,notnull,default:'pending'"`
	AssignedUserID *uuid.UUID `bun:"assigned_user_id,type:uuid"`
	AssignedUser   *User      `bun:"rel:belongs-to,join:assigned_user_id=id"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// InitSchema creates the tables if they do not exist yet.
func InitSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*Task)(nil)).
		IfNotExists().
		ForeignKey(`("assigned_user_id") REFERENCES "users" ("id")`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}

	return nil
}

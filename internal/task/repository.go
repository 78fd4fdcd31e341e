package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tasknest/api/internal/database"
)

var (
	ErrNotFound         = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assigned user does not exist")
)

// Repository handles task data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a new task. A foreign key violation on the assignee
// surfaces as ErrAssigneeNotFound.
func (r *Repository) Insert(ctx context.Context, in CreateInput) (*Task, error) {
	dbTask := &database.Task{
		Title:          in.Title,
		Description:    in.Description,
		Status:         in.Status,
		AssignedUserID: in.AssignedUserID,
	}

	_, err := r.db.NewInsert().
		Model(dbTask).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return mapDBTaskToModel(dbTask), nil
}

// FindByID retrieves a task with its assignee populated
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	dbTask := new(database.Task)
	err := r.db.NewSelect().
		Model(dbTask).
		Relation("AssignedUser").
		Where("t.id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return mapDBTaskToModel(dbTask), nil
}

// Find retrieves one page of tasks matching the filter, assignees populated
func (r *Repository) Find(ctx context.Context, f Filter, limit, offset int) ([]*Task, error) {
	var dbTasks []*database.Task
	q := r.db.NewSelect().
		Model(&dbTasks).
		Relation("AssignedUser")

	q = applyFilter(q, f)

	err := q.Order("t.created_at ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*Task, 0, len(dbTasks))
	for _, dbTask := range dbTasks {
		tasks = append(tasks, mapDBTaskToModel(dbTask))
	}

	return tasks, nil
}

// Count returns the total number of tasks matching the filter
func (r *Repository) Count(ctx context.Context, f Filter) (int, error) {
	q := r.db.NewSelect().Model((*database.Task)(nil))
	q = applyFilter(q, f)

	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return count, nil
}

// Update applies a partial update and returns the updated task
func (r *Repository) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Task, error) {
	dbTask := new(database.Task)
	q := r.db.NewUpdate().
		Model(dbTask).
		Set("updated_at = now()").
		Where("id = ?", id).
		Returning("*")

	if in.Title != nil {
		q = q.Set("title = ?", *in.Title)
	}
	if in.Description != nil {
		q = q.Set("description = ?", *in.Description)
	}
	if in.Status != nil {
		q = q.Set("status = ?", *in.Status)
	}
	if in.AssignedUserID != nil {
		q = q.Set("assigned_user_id = ?", *in.AssignedUserID)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBTaskToModel(dbTask), nil
}

// Delete removes a task and returns the deleted record
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (*Task, error) {
	dbTask := new(database.Task)
	result, err := r.db.NewDelete().
		Model(dbTask).
		Where("id = ?", id).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBTaskToModel(dbTask), nil
}

func applyFilter(q *bun.SelectQuery, f Filter) *bun.SelectQuery {
	if f.Status != "" {
		q = q.Where("t.status = ?", f.Status)
	}
	if f.AssignedUserID != nil {
		q = q.Where("t.assigned_user_id = ?", *f.AssignedUserID)
	}
	return q
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "violates foreign key constraint")
}

// mapDBTaskToModel converts database model to domain model
func mapDBTaskToModel(dbt *database.Task) *Task {
	t := &Task{
		ID:             dbt.ID,
		Title:          dbt.Title,
		Description:    dbt.Description,
		Status:         dbt.Status,
		AssignedUserID: dbt.AssignedUserID,
		CreatedAt:      dbt.CreatedAt,
		UpdatedAt:      dbt.UpdatedAt,
	}

	if dbt.AssignedUser != nil {
		t.AssignedUser = &Assignee{
			ID:    dbt.AssignedUser.ID,
			Name:  dbt.AssignedUser.Name,
			Email: dbt.AssignedUser.Email,
		}
	}

	return t
}

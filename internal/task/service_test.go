package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with the same filter and pagination
// semantics as the Postgres repository.
type fakeStore struct {
	tasks []*Task
}

func (f *fakeStore) matching(filter Filter) []*Task {
	var out []*Task
	for _, t := range f.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AssignedUserID != nil &&
			(t.AssignedUserID == nil || *t.AssignedUserID != *filter.AssignedUserID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (f *fakeStore) Insert(ctx context.Context, in CreateInput) (*Task, error) {
	now := time.Now()
	t := &Task{
		ID:             uuid.New(),
		Title:          in.Title,
		Description:    in.Description,
		Status:         in.Status,
		AssignedUserID: in.AssignedUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Find(ctx context.Context, filter Filter, limit, offset int) ([]*Task, error) {
	matched := f.matching(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeStore) Count(ctx context.Context, filter Filter) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Task, error) {
	t, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.AssignedUserID != nil {
		t.AssignedUserID = in.AssignedUserID
	}
	t.UpdatedAt = time.Now()
	return t, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) (*Task, error) {
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func seedTasks(t *testing.T, store *fakeStore, n int, status string) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.Insert(context.Background(), CreateInput{
			Title:  fmt.Sprintf("task %d", i),
			Status: status,
		})
		require.NoError(t, err)
	}
}

func TestParsePositiveInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		def  int
		want int
	}{
		{"", 10, 10},
		{"5", 10, 5},
		{"abc", 10, 10},
		{"-3", 1, 1},
		{"0", 1, 1},
		{"2.5", 10, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parsePositiveInt(tt.raw, tt.def), "raw=%q", tt.raw)
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 3, totalPages(12, 5))
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeStore{})

	_, err := svc.Create(context.Background(), CreateInput{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(context.Background(), CreateInput{Title: "ok", Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateDefaultsStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeStore{})

	created, err := svc.Create(context.Background(), CreateInput{Title: "write the report"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
}

func TestListPagination(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)
	seedTasks(t, store, 12, StatusPending)

	result, err := svc.List(context.Background(), Filter{}, "2", "5")
	require.NoError(t, err)

	assert.Equal(t, 12, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 3, result.Pages)
	assert.Len(t, result.Tasks, 5)
	// Second page of five starts at the sixth task
	assert.Equal(t, "task 5", result.Tasks[0].Title)
}

func TestListCoercesBadPaginationInput(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)
	seedTasks(t, store, 12, StatusPending)

	for _, raw := range []struct{ page, limit string }{
		{"", ""},
		{"abc", "xyz"},
		{"-1", "-5"},
		{"0", "0"},
	} {
		result, err := svc.List(context.Background(), Filter{}, raw.page, raw.limit)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Page, "page=%q limit=%q", raw.page, raw.limit)
		assert.Equal(t, 12, result.Total)
		assert.Equal(t, 2, result.Pages)
		assert.Len(t, result.Tasks, 10)
	}
}

func TestListStatusFilter(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)
	seedTasks(t, store, 4, StatusPending)
	seedTasks(t, store, 3, StatusDone)

	result, err := svc.List(context.Background(), Filter{Status: StatusDone}, "", "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Tasks, 3)
	for _, task := range result.Tasks {
		assert.Equal(t, StatusDone, task.Status)
	}
}

func TestListAssigneeFilter(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)
	assignee := uuid.New()

	_, err := svc.Create(context.Background(), CreateInput{Title: "mine", AssignedUserID: &assignee})
	require.NoError(t, err)
	seedTasks(t, store, 2, StatusPending)

	result, err := svc.List(context.Background(), Filter{AssignedUserID: &assignee}, "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, "mine", result.Tasks[0].Title)
}

func TestUpdateValidation(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	created, err := svc.Create(context.Background(), CreateInput{Title: "original"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)

	bogus := "bogus"
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	done := StatusDone
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, updated.Status)
	assert.Equal(t, "original", updated.Title)
}

func TestUpdateEmptyInputReturnsTask(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	created, err := svc.Create(context.Background(), CreateInput{Title: "unchanged"})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), created.ID, UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestDeleteRemovesTask(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	svc := NewService(store)

	created, err := svc.Create(context.Background(), CreateInput{Title: "doomed"})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

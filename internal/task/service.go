package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidStatus = fmt.Errorf("status must be one of: %s, %s, %s", StatusPending, StatusInProgress, StatusDone)
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusDone:       true,
}

// Service handles task business logic. Any authenticated caller may act
// on any task; there is no ownership model.
type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new task
func (s *Service) Create(ctx context.Context, in CreateInput) (*Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if in.Status == "" {
		in.Status = StatusPending
	} else if !validStatuses[in.Status] {
		return nil, ErrInvalidStatus
	}

	return s.repo.Insert(ctx, in)
}

// Get retrieves a single task with its assignee populated
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of tasks matching the filter. Page and limit
// arrive as raw query values; anything absent, non-numeric or
// non-positive falls back to the defaults, so the offset can never go
// negative.
func (s *Service) List(ctx context.Context, f Filter, rawPage, rawLimit string) (*ListResult, error) {
	page := parsePositiveInt(rawPage, defaultPage)
	limit := parsePositiveInt(rawLimit, defaultLimit)
	offset := (page - 1) * limit

	tasks, err := s.repo.Find(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Total: total,
		Page:  page,
		Pages: totalPages(total, limit),
		Tasks: tasks,
	}, nil
}

// Update applies a partial update after re-validating the changed fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Task, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, ErrTitleRequired
	}
	if in.Status != nil && !validStatuses[*in.Status] {
		return nil, ErrInvalidStatus
	}
	if in.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	return s.repo.Update(ctx, id, in)
}

// Delete removes a task and returns the deleted record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.Delete(ctx, id)
}

func parsePositiveInt(raw string, defaultValue int) int {
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// totalPages is ceil(total/limit)
func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}

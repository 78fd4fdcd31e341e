package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tasknest/api/internal/httputil"
	"github.com/tasknest/api/internal/logging"
)

// Handler contains HTTP handlers for task endpoints. All of them sit
// behind the auth middleware.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateRequest represents the task creation request body
type CreateRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
}

// UpdateRequest represents a partial task update; absent fields are
// left unchanged.
type UpdateRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
}

// Create handles task creation
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Task fields"
// @Success      201 {object} Task
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/tasks [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid task create body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		if isValidationError(err) {
			logger.Warn("task creation failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationError, http.StatusBadRequest)
			return
		}
		logger.Error("task creation failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("task created", "task_id", created.ID)
	httputil.RespondJSON(w, created, http.StatusCreated)
}

// Get handles fetching a single task
// @Summary      Get task by ID
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      200 {object} Task
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Failure      404 {object} httputil.ErrorResponse "Task not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/tasks/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "task not found", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "task not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get task", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, t, http.StatusOK)
}

// List handles paginated, filtered task listing
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Exact status match"
// @Param        assignedUserId query string false "Exact assignee match"
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Success      200 {object} ListResult
// @Failure      400 {object} httputil.ErrorResponse "Malformed filter"
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/tasks [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	query := r.URL.Query()

	f := Filter{Status: query.Get("status")}
	if raw := query.Get("assignedUserId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondErrorWithCode(w, "invalid assignedUserId", httputil.CodeValidationError, http.StatusBadRequest)
			return
		}
		f.AssignedUserID = &id
	}

	result, err := h.service.List(r.Context(), f, query.Get("page"), query.Get("limit"))
	if err != nil {
		logger.Error("failed to list tasks", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// Update handles partial task updates
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        request body UpdateRequest true "Fields to change"
// @Success      200 {object} Task
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Failure      404 {object} httputil.ErrorResponse "Task not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/tasks/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "task not found", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid task update body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, UpdateInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		AssignedUserID: req.AssignedUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "task not found", httputil.CodeNotFound, http.StatusNotFound)
		case isValidationError(err):
			logger.Warn("task update failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationError, http.StatusBadRequest)
		default:
			logger.Error("task update failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("task updated", "task_id", updated.ID)
	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete handles task deletion
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      200 {object} Task "The deleted task"
// @Failure      401 {object} httputil.ErrorResponse "Unauthenticated"
// @Failure      404 {object} httputil.ErrorResponse "Task not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/tasks/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "task not found", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "task not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to delete task", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("task deleted", "task_id", deleted.ID)
	httputil.RespondJSON(w, deleted, http.StatusOK)
}

// isValidationError reports whether the error is a client-fault
// validation failure rather than an internal one.
func isValidationError(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrAssigneeNotFound)
}

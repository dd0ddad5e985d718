package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/service"
	"github.com/broadleaf/taskd/pkg/httpx"
	"github.com/broadleaf/taskd/pkg/slogx"
	"github.com/broadleaf/taskd/pkg/tasksdk"
)

// TasksHandler serves every task endpoint. The authn middleware has already
// resolved the current user by the time any of these run.
type TasksHandler struct {
	TaskService *service.TaskService
}

// Create godoc
//
//	@Summary		Create a task
//	@Description	Creates a task owned by the authenticated user.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tasksdk.TaskRequest		true	"Task fields"
//	@Success		201		{object}	tasksdk.TaskResponse
//	@Failure		400		{object}	tasksdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	tasksdk.ErrorResponse	"invalid_token"
//	@Router			/v1/tasks [post].
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		tasksdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req tasksdk.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		tasksdk.ErrInvalidRequest.WithDescription("Invalid JSON body").WriteError(w)
		return
	}

	task, err := h.TaskService.Create(ctx, user, domain.TaskChange{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeTaskError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, taskResponse(task))
}

// List godoc
//
//	@Summary		List tasks
//	@Description	Lists the authenticated user's tasks in creation order.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			skip	query		int	false	"Rows to skip"		default(0)
//	@Param			limit	query		int	false	"Maximum rows"		default(100)
//	@Success		200		{array}		tasksdk.TaskResponse
//	@Failure		401		{object}	tasksdk.ErrorResponse	"invalid_token"
//	@Router			/v1/tasks [get].
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		tasksdk.ErrInvalidToken.WriteError(w)
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", service.DefaultListLimit)

	tasks, err := h.TaskService.List(ctx, user, skip, limit)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}

	out := make([]tasksdk.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Get godoc
//
//	@Summary		Fetch a task
//	@Description	Returns one task. Tasks owned by other users report not_found.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Task id"
//	@Success		200	{object}	tasksdk.TaskResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	tasksdk.ErrorResponse	"not_found"
//	@Router			/v1/tasks/{id} [get].
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		tasksdk.ErrInvalidToken.WriteError(w)
		return
	}

	task, err := h.TaskService.Get(ctx, user, r.PathValue("id"))
	if err != nil {
		writeTaskError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
}

// Update godoc
//
//	@Summary		Replace a task
//	@Description	Fully replaces title, description and due date. The completed
//	@Description	flag is not touched by this endpoint.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Task id"
//	@Param			body	body		tasksdk.TaskRequest		true	"Replacement fields"
//	@Success		200		{object}	tasksdk.TaskResponse
//	@Failure		400		{object}	tasksdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	tasksdk.ErrorResponse	"invalid_token"
//	@Failure		404		{object}	tasksdk.ErrorResponse	"not_found"
//	@Router			/v1/tasks/{id} [put].
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		tasksdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req tasksdk.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		tasksdk.ErrInvalidRequest.WithDescription("Invalid JSON body").WriteError(w)
		return
	}

	task, err := h.TaskService.Update(ctx, user, r.PathValue("id"), domain.TaskChange{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeTaskError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
}

// Complete godoc
//
//	@Summary		Mark a task complete
//	@Description	Sets the completed flag. One-directional and idempotent;
//	@Description	completing an already-completed task is not an error.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Task id"
//	@Success		200	{object}	tasksdk.TaskResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	tasksdk.ErrorResponse	"not_found"
//	@Router			/v1/tasks/{id}/complete [patch].
func (h *TasksHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		tasksdk.ErrInvalidToken.WriteError(w)
		return
	}

	task, err := h.TaskService.Complete(ctx, user, r.PathValue("id"))
	if err != nil {
		writeTaskError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponse(task))
}

// Delete godoc
//
//	@Summary		Delete a task
//	@Description	Permanently removes a task. There is no soft delete.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Task id"
//	@Success		200	{object}	tasksdk.MessageResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	tasksdk.ErrorResponse	"not_found"
//	@Router			/v1/tasks/{id} [delete].
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(ctx)
	if !ok {
		tasksdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.TaskService.Delete(ctx, user, r.PathValue("id")); err != nil {
		writeTaskError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tasksdk.MessageResponse{
		Message: "Task deleted successfully",
	})
}

func writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		tasksdk.ErrTaskNotFound.WriteError(w)
	case errors.Is(err, service.ErrTitleRequired):
		tasksdk.ErrInvalidRequest.WithDescription("title is required").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("task operation failed", "err", err)
		tasksdk.ErrServerError.WriteError(w)
	}
}

func taskResponse(t domain.Task) tasksdk.TaskResponse {
	return tasksdk.TaskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/broadleaf/taskd/internal/service"
	"github.com/broadleaf/taskd/pkg/httpx"
	"github.com/broadleaf/taskd/pkg/slogx"
	"github.com/broadleaf/taskd/pkg/tasksdk"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates a user account from an email, password and full name.
//	@Description	The email doubles as the login identifier and must be unique.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tasksdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	tasksdk.UserResponse	"id, email, full_name, created_at"
//	@Failure		400		{object}	tasksdk.ErrorResponse	"invalid_request or email_taken"
//	@Failure		500		{object}	tasksdk.ErrorResponse	"server_error"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req tasksdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		tasksdk.ErrInvalidRequest.WithDescription("Invalid JSON body").WriteError(w)
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		tasksdk.ErrInvalidRequest.WithDescription("email is required").WriteError(w)
		return
	}
	if req.Password == "" {
		tasksdk.ErrInvalidRequest.WithDescription("password is required").WriteError(w)
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		tasksdk.ErrInvalidRequest.WithDescription("full_name is required").WriteError(w)
		return
	}

	user, err := h.AuthService.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			tasksdk.ErrEmailTaken.WriteError(w)
			return
		}
		log.Error("failed to register user", "err", err)
		tasksdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tasksdk.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	})
}

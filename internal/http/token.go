package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/broadleaf/taskd/internal/service"
	"github.com/broadleaf/taskd/pkg/httpx"
	"github.com/broadleaf/taskd/pkg/slogx"
	"github.com/broadleaf/taskd/pkg/tasksdk"
)

type TokenHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Obtain an access token
//	@Description	Exchanges an email/password pair for a signed bearer token.
//	@Description	Unknown emails and wrong passwords produce the same error so
//	@Description	account existence cannot be probed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tasksdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	tasksdk.TokenResponse	"access_token, token_type"
//	@Failure		400		{object}	tasksdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	tasksdk.ErrorResponse	"invalid_credentials"
//	@Failure		500		{object}	tasksdk.ErrorResponse	"server_error"
//	@Router			/v1/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req tasksdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		tasksdk.ErrInvalidRequest.WithDescription("Invalid JSON body").WriteError(w)
		return
	}

	if req.Email == "" || req.Password == "" {
		tasksdk.ErrInvalidRequest.WithDescription("email and password are required").WriteError(w)
		return
	}

	token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			tasksdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("login failed", "err", err)
		tasksdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tasksdk.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

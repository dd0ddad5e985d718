package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/service"
	"github.com/broadleaf/taskd/pkg/httpx"
)

type ctxKey string

const ctxKeyUser ctxKey = "current_user"

// AuthnMiddleware resolves the bearer token into the current user and
// injects it into the request context. A missing header and a failed
// resolution both end the request with 401, but the response descriptions
// differ so clients can tell "you sent nothing" from "what you sent is no
// good".
func AuthnMiddleware(identity *service.IdentityService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				httpx.WriteBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			user, err := identity.Resolve(ctx, raw)
			if err != nil {
				httpx.WriteBearerError(w, "token resolution failed")
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser pulls the resolved user out of the request context. The bool
// is false only when the authn middleware did not run, which is a routing
// bug rather than a client error.
func currentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

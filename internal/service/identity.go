package service

import (
	"context"
	"errors"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/store"
	"github.com/broadleaf/taskd/pkg/jwtx"
	"github.com/broadleaf/taskd/pkg/slogx"
)

// ErrUnauthenticated covers every way a presented token can fail to resolve
// to an account: bad signature, malformed, expired, or a subject that no
// longer exists. The boundary maps all of them to 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// IdentityService resolves a bearer token into the current user for a
// request. Tokens are stateless, so resolution is verify-then-lookup with no
// session storage involved.
type IdentityService struct {
	Store    store.Store
	Verifier jwtx.Verifier
}

// Resolve verifies the raw token and loads the user named by its subject.
func (s *IdentityService) Resolve(ctx context.Context, raw string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		l.Warn("token verification failed", "err", err)
		return domain.User{}, ErrUnauthenticated
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token is genuine but the account is gone.
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, err
	}

	return user, nil
}

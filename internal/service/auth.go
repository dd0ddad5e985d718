package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/broadleaf/taskd/internal/domain"
	"github.com/broadleaf/taskd/internal/store"
	"github.com/broadleaf/taskd/pkg/cryptox"
	"github.com/broadleaf/taskd/pkg/idx"
	"github.com/broadleaf/taskd/pkg/jwtx"
	"github.com/broadleaf/taskd/pkg/slogx"
)

var (
	ErrEmailTaken = errors.New("email_taken")

	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password". Collapsing the two keeps account existence unguessable
	// through the login endpoint.
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// AuthService turns credentials into verified identities and verified
// identities into bearer tokens.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Register creates a new account with a hashed password. The email must not
// already be registered.
func (s *AuthService) Register(
	ctx context.Context,
	email, password, fullName string,
) (domain.User, error) {
	email = normalizeEmail(email)

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// The precheck races with concurrent registrations; the unique
		// index is the authority.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	// Read back so timestamps reflect what was stored.
	return s.Store.Users().GetUserByEmail(ctx, email)
}

// Authenticate verifies an email/password pair and returns the account.
// Unknown emails and bad passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(
	ctx context.Context,
	email, password string,
) (domain.User, error) {
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("password verification failed", "user_id", user.ID)
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues a signed bearer token whose subject is the
// account email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	claims := jwtx.NewAccessClaims(user.Email, user.FullName, s.Issuer, s.AccessTTL, time.Now().UTC())
	return s.Signer.Sign(claims)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

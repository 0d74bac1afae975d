// Package policy implements the authorization and validation rules applied to
// every assignment and submission operation: Basic credential validation,
// ownership enforcement, payload field constraints, and submission
// eligibility.
package policy

import (
	"context"
	"fmt"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/app/repositories"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/auth"
)

// Engine evaluates credentials and ownership against the user store.
type Engine struct {
	users repositories.UserStore
}

// NewEngine creates a policy engine backed by a user store.
func NewEngine(users repositories.UserStore) *Engine {
	return &Engine{users: users}
}

// LookupCredentialUser parses the Authorization header and resolves its user
// without verifying the password. Callers that need a resource lookup between
// user resolution and the ownership decision (see AuthorizeUser) use this
// directly.
func (e *Engine) LookupCredentialUser(ctx context.Context, header string) (*models.User, auth.BasicCredential, error) {
	cred, err := auth.ParseBasicHeader(header)
	if err != nil {
		return nil, auth.BasicCredential{}, err
	}

	user, err := e.users.GetByEmail(ctx, cred.Email)
	if err != nil {
		return nil, auth.BasicCredential{}, fmt.Errorf("error looking up user: %w", err)
	}
	if user == nil {
		return nil, auth.BasicCredential{}, apperrors.ErrUserNotFound
	}

	return user, cred, nil
}

// Authenticate fully validates a Basic credential: header syntax, user
// existence, then password. Distinguishes ErrUserNotFound from
// ErrPasswordMismatch so tests and callers can tell them apart; the HTTP
// boundary maps them as the wire contract requires.
func (e *Engine) Authenticate(ctx context.Context, header string) (*models.User, error) {
	user, cred, err := e.LookupCredentialUser(ctx, header)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cred.Password) {
		return nil, apperrors.ErrPasswordMismatch
	}

	return user, nil
}

// AuthorizeUser decides whether a resolved user may act on a resource owned
// by ownerUserID.
//
// Ownership is decided before the password check (ownership leaks nothing the
// existence check has not already leaked), but the password is always
// verified before any grant: a correct owner with a wrong password is never
// authorized. ownerUserID may be empty when no resource exists yet (create),
// which skips the ownership step.
func (e *Engine) AuthorizeUser(user *models.User, cred auth.BasicCredential, ownerUserID string) error {
	if ownerUserID != "" && user.ID != ownerUserID {
		return apperrors.ErrNotResourceOwner
	}

	if !auth.CheckPassword(user.Password, cred.Password) {
		return apperrors.ErrPasswordMismatch
	}

	return nil
}

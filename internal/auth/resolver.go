package auth

import (
	"context"

	apperrors "taskplanner/internal/errors"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
)

// IdentityResolver maps a verified bearer token back to a live user record.
// It is called fresh on every protected request, so deleting a user revokes
// access on the next request even though tokens themselves are stateless.
type IdentityResolver struct {
	tokens *TokenService
	users  repository.UserRepository
}

// NewIdentityResolver creates an identity resolver.
func NewIdentityResolver(tokens *TokenService, users repository.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// Resolve verifies the token and looks up the subject email. An invalid or
// expired token and a subject that no longer exists both fail with
// ErrUnauthenticated; callers cannot tell the cases apart.
func (r *IdentityResolver) Resolve(ctx context.Context, tokenString string) (*model.User, error) {
	email, err := r.tokens.Verify(tokenString)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

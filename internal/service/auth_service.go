package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskplanner/internal/auth"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The message is identical whether the email is unknown or the password
	// mismatched, to avoid account enumeration.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrEmailAlreadyRegistered is returned when registering an existing email.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// AuthService handles registration, local login and Google sign-in.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	LoginWithGoogle(ctx context.Context, claims *auth.GoogleClaims) (string, *model.User, error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) AuthService {
	return &authService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new local account with a hashed password.
func (s *authService) Register(ctx context.Context, email, password, fullName string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hashed,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies local credentials and returns a fresh access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	// Accounts created through Google sign-in have no password hash and can
	// never authenticate locally.
	if user.PasswordHash == "" || !s.hasher.Check(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// LoginWithGoogle resolves validated Google claims to a local account and
// returns a fresh access token for it.
//
// Join-or-create: an unseen email creates a Google-only user; an existing
// user without a linked Google identity gets the subject id and avatar added
// (the password hash, if any, is preserved); a user already linked is left
// untouched. Claims are validated by the broker before this runs, so no
// partial record can be written from a failed exchange.
func (s *authService) LoginWithGoogle(ctx context.Context, claims *auth.GoogleClaims) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		if user.GoogleID == "" {
			user.GoogleID = claims.Subject
			user.AvatarURL = claims.Picture
			if err := s.users.Update(ctx, user); err != nil {
				return "", nil, fmt.Errorf("link google identity: %w", err)
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{
			Email:     claims.Email,
			FullName:  claims.Name,
			GoogleID:  claims.Subject,
			AvatarURL: claims.Picture,
			Active:    true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return "", nil, fmt.Errorf("create user: %w", err)
			}
			// Lost the race against a concurrent first sign-in for the same
			// email; the row exists now, so fall back to a lookup.
			user, err = s.users.FindByEmail(ctx, claims.Email)
			if err != nil {
				return "", nil, fmt.Errorf("lookup user after conflict: %w", err)
			}
		}
	default:
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

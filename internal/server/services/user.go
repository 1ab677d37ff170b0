// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and loading the
// authenticated user's profile.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/password"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: validate input, create the user, mint a token
// - Login: verify credentials and mint a token
// - GetUser: load the profile for an already verified identity
type UserService struct {
	repo   users.Repository
	hasher *password.Hasher
	issuer *auth.Issuer

	// dummyDigest is compared against when the login email is unknown, so
	// "no such account" costs the same as "wrong password".
	dummyDigest string
}

// NewUserService constructs a UserService over the given repository,
// password hasher, and token issuer.
func NewUserService(repo users.Repository, hasher *password.Hasher, issuer *auth.Issuer) *UserService {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		dummy = ""
	}
	return &UserService{
		repo:        repo,
		hasher:      hasher,
		issuer:      issuer,
		dummyDigest: dummy,
	}
}

// Register creates a new account and returns a freshly issued token for it.
// Input is re-validated here even though the HTTP boundary already checks
// it: username non-empty, email well-formed, password within length policy.
// Nothing is persisted unless every check passes. A username or email that
// is already taken yields common.ErrorAlreadyExists without saying which.
func (s *UserService) Register(ctx context.Context, username, email, pw string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("%w: username must not be empty", common.ErrorValidation)
	}

	email, err := normalizeEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: email is not a valid address", common.ErrorValidation)
	}

	digest, err := s.hasher.Hash(pw)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return "", err
		}
		return "", common.ErrorInternal
	}

	user := &models.User{UserName: username, Email: email, PasswordHash: digest}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", fmt.Errorf("error creating user: %w", common.ErrorAlreadyExists)
		}
		return "", common.ErrorInternal
	}

	token, err := s.issuer.Issue(created.ID)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Login verifies the provided password against the stored digest and,
// on success, returns a new token. Unknown email and wrong password both
// yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, pw string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a compare so unknown emails cost the same as bad passwords
			s.hasher.Verify(pw, s.dummyDigest)
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(pw, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetUser loads the account behind a verified user ID. A missing account
// (deleted since the token was issued) is reported as unauthorized.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// normalizeEmail lower-cases the address and rejects anything net/mail
// cannot parse as a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", common.ErrorValidation
	}
	return email, nil
}

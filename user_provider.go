package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserProvider verifies credential sign-ins against the user store
type UserProvider struct {
	store  UserFinder
	logger Logger
}

var _ IdentityProvider = (*UserProvider)(nil)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserFinder) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will validate the credential shape, find the user, compare
// the password, and return the identity. A malformed shape short-circuits
// before any datastore call. An unknown email and a wrong password both come
// back as ErrMismatchedHashAndPassword.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	creds := Credentials{Email: identifier, Password: password}
	if err := creds.Validate(); err != nil {
		u.logger.Info("Invalid credentials", "reason", "validation")
		return nil, ErrInvalidCredentials
	}

	user, err := u.store.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			u.logger.Info("Invalid credentials", "reason", "verification")
			return nil, ErrMismatchedHashAndPassword
		}
		u.logger.Error("VerifyIdentity user lookup failed", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		u.logger.Info("Invalid credentials", "reason", "verification")
		return nil, ErrMismatchedHashAndPassword
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity by email without verifying
// a password. Used when rebuilding identity from an established session.
func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}

	return NewIdentityFromUser(user), nil
}

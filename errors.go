package auth

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrMismatchedHashAndPassword covers both an unknown email and a wrong
// password; callers must not be able to tell the two apart.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// ErrNoEmptyString is the error for empty password hashing
var ErrNoEmptyString = errors.New("password can not be an empty string")

// ErrUnableToFindSession is the error when our request has no cookie
var ErrUnableToFindSession = errors.New("unable to find session")

// ErrUnableToDecodeSession unable to decode JWT from session cookie
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = errors.New("unable to map claims")

// ErrUnableToParseData parse error
var ErrUnableToParseData = errors.New("unable to parse data")

const (
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeDatastoreFailure   = "auth_datastore_failure"
	TextCodeMalformedAssertion = "auth_malformed_assertion"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
)

// ErrInvalidCredentials is returned when the credential shape fails
// validation; the specific failing field is never surfaced.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrDatastoreFailure is returned when the user lookup fails for an
// infrastructure reason, as opposed to the record simply not existing.
var ErrDatastoreFailure = goerrors.New("failed to fetch user", goerrors.CategoryInternal).
	WithTextCode(TextCodeDatastoreFailure).
	WithCode(goerrors.CodeInternal)

// ErrMalformedAssertion is returned when a provider profile is missing
// required identity fields.
var ErrMalformedAssertion = goerrors.New("malformed identity assertion", goerrors.CategoryBadInput).
	WithTextCode(TextCodeMalformedAssertion).
	WithCode(goerrors.CodeBadRequest)

// ErrSignInNotAllowed is returned when the sign-in policy rejects an
// otherwise verified identity.
var ErrSignInNotAllowed = goerrors.New("sign-in not allowed", goerrors.CategoryAuthz).
	WithTextCode("auth_sign_in_not_allowed").
	WithCode(goerrors.CodeForbidden)

// ErrTokenExpired is returned when a session token is past its expiry.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a session token cannot be parsed.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

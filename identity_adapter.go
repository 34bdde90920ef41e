package auth

import (
	"github.com/goliatone/go-auth-gateway/social"
)

// UserIdentity adapts a User into the Identity interface for token generation.
type UserIdentity struct {
	user *User
}

// NewIdentityFromUser returns an Identity adapter for the provided user.
func NewIdentityFromUser(user *User) Identity {
	if user == nil {
		return nil
	}
	return UserIdentity{user: user}
}

// ID returns the user's ID as a string.
func (u UserIdentity) ID() string {
	if u.user == nil {
		return ""
	}
	return u.user.ID.String()
}

// Name returns the user's display name.
func (u UserIdentity) Name() string {
	if u.user == nil {
		return ""
	}
	return u.user.Name
}

// Email returns the user's email address.
func (u UserIdentity) Email() string {
	if u.user == nil {
		return ""
	}
	return u.user.Email
}

// AssertionIdentity adapts an IdentityAssertion into the Identity interface.
type AssertionIdentity struct {
	assertion IdentityAssertion
}

// NewIdentityFromAssertion returns an Identity adapter for the assertion.
func NewIdentityFromAssertion(assertion IdentityAssertion) Identity {
	return AssertionIdentity{assertion: assertion}
}

// ID returns the provider subject identifier.
func (a AssertionIdentity) ID() string {
	return a.assertion.Subject
}

// Name returns the asserted display name.
func (a AssertionIdentity) Name() string {
	return a.assertion.Name
}

// Email returns the asserted email address.
func (a AssertionIdentity) Email() string {
	return a.assertion.Email
}

// NewIdentityFromProfile normalizes a provider profile into an identity
// assertion. The provider subject becomes the id; name and email are copied
// verbatim. No password check happens here, the provider already
// authenticated the user.
func NewIdentityFromProfile(profile *social.SocialProfile) (Identity, error) {
	assertion, err := NormalizeProfile(profile)
	if err != nil {
		return nil, err
	}
	return NewIdentityFromAssertion(assertion), nil
}

// NormalizeProfile maps a provider profile onto the minimal identity shape.
// A profile missing the subject or email is a malformed assertion.
func NormalizeProfile(profile *social.SocialProfile) (IdentityAssertion, error) {
	if profile == nil || profile.ProviderUserID == "" || profile.Email == "" {
		return IdentityAssertion{}, ErrMalformedAssertion
	}

	return IdentityAssertion{
		Subject: profile.ProviderUserID,
		Name:    profile.Name,
		Email:   profile.Email,
	}, nil
}

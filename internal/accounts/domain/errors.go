package domain

import "errors"

var (
	ErrTokenMissing     = errors.New("token is required")
	ErrInvalidToken     = errors.New("invalid token")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrProfileNotFound  = errors.New("user not found")
	ErrProfileExists    = errors.New("account already exists")
	ErrNoProfiles       = errors.New("no users found")
	ErrEmailExists      = errors.New("email already in use")
	ErrForbidden        = errors.New("forbidden")

	// ErrIdentitySyncFailed marks the partial-failure case where the profile
	// document was written but the provider-side update did not go through.
	ErrIdentitySyncFailed = errors.New("profile created but identity update failed")
)

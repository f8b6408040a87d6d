package service

import "errors"

var (
	// ErrInvalidDataProvided signals a request missing required fields.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single generic login failure: it covers
	// both an unknown national ID and a wrong password, so a caller cannot
	// tell which check failed.
	ErrInvalidCredentials = errors.New("invalid national id or password")

	// ErrWrongOldPassword is returned by the password change flow when the
	// supplied old password does not match the stored hash.
	ErrWrongOldPassword = errors.New("old password is incorrect")

	// ErrTokenCreationFailed wraps JWT signing failures.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised result of any token
	// validation failure (expired, wrong issuer, malformed, bad signature).
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrAdminOnly is returned when a non-admin calls a roster management
	// operation. The caller's role is always re-read from the store.
	ErrAdminOnly = errors.New("access denied: admins only")

	// ErrVotersOnly is returned when a non-voter (an admin) tries to cast
	// a vote.
	ErrVotersOnly = errors.New("only voters can vote")
)

package services

import "errors"

// Sentinel errors surfaced to the GraphQL layer. The executor renders the
// message verbatim in the response's errors list, so these read as
// user-facing strings.
var (
	ErrNotSignedIn       = errors.New("you must be signed in to do that")
	ErrUserNotFound      = errors.New("no user found for that email")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmailTaken        = errors.New("an account with that email already exists")
	ErrItemNotFound      = errors.New("item not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrNotCartOwner      = errors.New("that cart item is not yours")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrResetToken        = errors.New("reset token is invalid or expired")
	ErrPermissionDenied  = errors.New("insufficient permissions to do that")
	ErrUnknownPermission = errors.New("unknown permission label")
)

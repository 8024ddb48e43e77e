package constants

import "time"

// Permission labels
const (
	PermissionAdmin            = "ADMIN"
	PermissionUser             = "USER"
	PermissionItemCreate       = "ITEMCREATE"
	PermissionItemUpdate       = "ITEMUPDATE"
	PermissionItemDelete       = "ITEMDELETE"
	PermissionPermissionUpdate = "PERMISSIONUPDATE"
)

// AllPermissions is the closed set accepted by updatePermissions.
var AllPermissions = []string{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

// Session cookie policy
const (
	TokenCookieName   = "token"
	SessionDuration   = 365 * 24 * time.Hour
	TokenCookieMaxAge = 365 * 24 * 60 * 60 // seconds
)

// Password reset policy
const (
	ResetTokenBytes = 20
	ResetTokenTTL   = time.Hour
)

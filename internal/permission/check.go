// Package permission evaluates a resolved user's permission set and jurisdiction.
// All functions are pure and accept a nil user.
package permission

import (
	"slices"

	"admin-hub/internal/domain"
)

// HasPermission reports whether user holds p.
func HasPermission(user *domain.User, p Permission) bool {
	if user == nil || len(user.Permissions) == 0 {
		return false
	}
	return slices.Contains(user.Permissions, string(p))
}

// HasAnyPermission reports whether user holds at least one of perms.
func HasAnyPermission(user *domain.User, perms []Permission) bool {
	if user == nil || len(perms) == 0 {
		return false
	}
	for _, p := range perms {
		if HasPermission(user, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether user holds every one of perms. An empty list
// is satisfied by any non-nil user.
func HasAllPermissions(user *domain.User, perms []Permission) bool {
	if user == nil {
		return false
	}
	for _, p := range perms {
		if !HasPermission(user, p) {
			return false
		}
	}
	return true
}

// CanCreate reports whether user may create entity.
func CanCreate(user *domain.User, entity Entity) bool {
	perms, ok := For(entity)
	return ok && HasPermission(user, perms.Create)
}

// CanRead reports whether user may read entity.
func CanRead(user *domain.User, entity Entity) bool {
	perms, ok := For(entity)
	return ok && HasPermission(user, perms.Read)
}

// CanUpdate reports whether user may update entity.
func CanUpdate(user *domain.User, entity Entity) bool {
	perms, ok := For(entity)
	return ok && HasPermission(user, perms.Update)
}

// CanDelete reports whether user may delete entity.
func CanDelete(user *domain.User, entity Entity) bool {
	perms, ok := For(entity)
	return ok && HasPermission(user, perms.Delete)
}

// RequirePermission returns an *AccessDeniedError unless user holds p.
// A nil error implies user is non-nil.
func RequirePermission(user *domain.User, p Permission) error {
	if !HasPermission(user, p) {
		return &AccessDeniedError{Missing: []Permission{p}}
	}
	return nil
}

// RequireAnyPermission returns an *AccessDeniedError unless user holds at least
// one of perms.
func RequireAnyPermission(user *domain.User, perms []Permission) error {
	if !HasAnyPermission(user, perms) {
		return &AccessDeniedError{Missing: slices.Clone(perms), Any: true}
	}
	return nil
}

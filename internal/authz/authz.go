// Package authz is the authorization policy: stateless predicates over an
// explicit acting user. The actor is resolved once by the session middleware
// and passed in; nothing here reads ambient state. A nil actor means an
// unauthenticated request.
package authz

import "catalog_system/internal/domain"

// CanManageItems reports whether the actor may add, edit or remove catalog
// items. Admins only.
func CanManageItems(actor *domain.User) bool {
	return actor != nil && actor.IsAdmin
}

// CanEditUser reports whether the actor may edit the named profile: the
// owner or an admin.
func CanEditUser(actor *domain.User, username string) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin || actor.Username == username
}

// CanRemoveUser reports whether the actor may delete the target account: the
// owner or an admin, but never when the target is an admin - admin accounts
// cannot be removed by anyone.
func CanRemoveUser(actor, target *domain.User) bool {
	if actor == nil || target == nil || target.IsAdmin {
		return false
	}
	return actor.IsAdmin || actor.Username == target.Username
}

// CanRate reports whether the actor may rate or un-rate items. Any
// authenticated user; callers only ever submit ratings under the actor's own
// name.
func CanRate(actor *domain.User) bool {
	return actor != nil
}

package authz

import "strings"

// Access levels a path may require.
const (
	AccessPublic = iota
	AccessUser   // ROLE_USER or ROLE_ADMIN
	AccessAdmin  // ROLE_ADMIN only
)

// rule maps a URL prefix to the access level it requires. First match
// wins, so more specific prefixes come first.
type rule struct {
	prefix string
	level  int
}

var rules = []rule{
	{"/admin", AccessAdmin},
	{"/users/edit", AccessAdmin},
	{"/users/delete", AccessAdmin},
	{"/list", AccessAdmin},

	{"/products", AccessUser},
	{"/order", AccessUser},
	{"/my-orders", AccessUser},
	{"/user", AccessUser},

	{"/register", AccessPublic},
	{"/login", AccessPublic},
	{"/logout", AccessPublic},
	{"/refresh", AccessPublic},
	{"/health", AccessPublic},
	{"/css", AccessPublic},
	{"/js", AccessPublic},
	{"/images", AccessPublic},
	{"/", AccessPublic},
}

// RequiredAccess returns the access level for a request path.
func RequiredAccess(path string) int {
	for _, r := range rules {
		if r.prefix == "/" {
			if path == "/" || path == "" {
				return r.level
			}
			continue
		}
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			return r.level
		}
	}
	// anything unlisted requires login
	return AccessUser
}

// Allowed reports whether the given role set may reach path.
func Allowed(roles RoleSet, path string) bool {
	switch RequiredAccess(path) {
	case AccessPublic:
		return true
	case AccessAdmin:
		return roles.Has(RoleAdmin)
	default:
		return roles.HasAny(RoleUser, RoleAdmin)
	}
}

// LoginTarget decides the post-login landing page: admins go to the
// dashboard, regular users to the catalog, anyone else home.
func LoginTarget(roles RoleSet) string {
	switch {
	case roles.Has(RoleAdmin):
		return "/admin/dashboard"
	case roles.Has(RoleUser):
		return "/products"
	default:
		return "/"
	}
}

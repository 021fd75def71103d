package authz

import "strings"

// Role is a single authority token, e.g. "ROLE_ADMIN".
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

// RoleSet is the parsed form of the comma-separated roles column on users.
type RoleSet map[Role]struct{}

// ParseRoles splits a comma-separated role string into a RoleSet. Tokens
// are trimmed so that "ROLE_ADMIN, ROLE_USER" and "ROLE_ADMIN,ROLE_USER"
// grant the same authorities; empty segments are dropped.
func ParseRoles(s string) RoleSet {
	set := make(RoleSet)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		set[Role(tok)] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// String renders the set back into the stored comma-separated form.
func (s RoleSet) String() string {
	toks := make([]string, 0, len(s))
	for r := range s {
		toks = append(toks, string(r))
	}
	// keep admin first for stable output in logs
	for i, t := range toks {
		if t == string(RoleAdmin) && i != 0 {
			toks[0], toks[i] = toks[i], toks[0]
		}
	}
	return strings.Join(toks, ",")
}

// Package auth authenticates callers by bearer token or API key and enforces
// hierarchical roles on routes.
package auth

import "fmt"

type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Satisfies reports whether r grants at least the privileges of required.
func (r Role) Satisfies(required Role) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// Highest returns the most privileged known role in roles, or "" if none.
func Highest(roles []string) Role {
	var best Role
	for _, s := range roles {
		r := Role(s)
		if roleRank[r] > roleRank[best] {
			best = r
		}
	}
	return best
}

type Principal struct {
	Subject string
	Role    Role
	Method  string
}

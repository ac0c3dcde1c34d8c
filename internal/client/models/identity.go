package models

import (
	"fmt"
	"strings"
)

// Role is the authorization level of an authenticated subject. Values match
// the backend's wire representation.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ParseRole accepts the wire form ("ROLE_ADMIN") as well as the bare name
// ("admin"), case-insensitively.
func ParseRole(s string) (Role, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "ROLE_")
	switch v {
	case "USER":
		return RoleUser, nil
	case "ADMIN":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Short returns the role name without the wire prefix.
func (r Role) Short() string {
	return strings.TrimPrefix(string(r), "ROLE_")
}

// Identity is the authenticated subject. It is a value type: a new login
// produces a new Identity rather than changing an existing one.
type Identity struct {
	SubjectID int64 `json:"id"`
	Role      Role  `json:"role"`
}

func (i Identity) String() string {
	return fmt.Sprintf("#%d (%s)", i.SubjectID, i.Role.Short())
}

// Package guards holds the route activation predicates. A guard is a pure
// function of the session and the route metadata; it never changes the
// session. On denial it names where the router should go instead.
package guards

import "github.com/dmitrijs2005/staffkeeper/internal/client/models"

// MetaRole is the route metadata key naming the role a route requires.
const MetaRole = "role"

// Decision is a guard's verdict. Redirect is only meaningful when Allow is false.
type Decision struct {
	Allow    bool
	Redirect string
}

// Allow activates the route.
func Allow() Decision { return Decision{Allow: true} }

// Deny refuses the route and sends navigation to redirect.
func Deny(redirect string) Decision { return Decision{Redirect: redirect} }

// Guard decides whether a route may be activated for session s.
type Guard func(s models.Session, meta map[string]string) Decision

// Authenticated admits signed-in sessions and sends everyone else to redirect.
func Authenticated(redirect string) Guard {
	return func(s models.Session, _ map[string]string) Decision {
		if s.Authenticated() {
			return Allow()
		}
		return Deny(redirect)
	}
}

// Guest admits anonymous sessions only, keeping signed-in users away from
// the login and registration surfaces.
func Guest(redirect string) Guard {
	return func(s models.Session, _ map[string]string) Decision {
		if !s.Authenticated() {
			return Allow()
		}
		return Deny(redirect)
	}
}

// Role admits sessions holding the role named by meta[MetaRole]. A route
// without a role entry has no role requirement; an unknown role admits nobody.
func Role(redirect string) Guard {
	return func(s models.Session, meta map[string]string) Decision {
		raw, ok := meta[MetaRole]
		if !ok || raw == "" {
			return Allow()
		}
		role, err := models.ParseRole(raw)
		if err != nil {
			return Deny(redirect)
		}
		if s.HasRole(role) {
			return Allow()
		}
		return Deny(redirect)
	}
}

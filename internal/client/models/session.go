package models

// Session is the authoritative record of who is signed in. The identity is
// unexported so that "authenticated" and "identity present" can never
// disagree: a Session is built either with an identity or without one.
type Session struct {
	identity *Identity
}

// AuthenticatedSession returns a Session for id.
func AuthenticatedSession(id Identity) Session {
	return Session{identity: &id}
}

// AnonymousSession returns the unauthenticated Session.
func AnonymousSession() Session {
	return Session{}
}

// Identity returns a copy of the session identity and whether one is present.
func (s Session) Identity() (Identity, bool) {
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s Session) Authenticated() bool {
	return s.identity != nil
}

// HasRole reports whether the session holds role. It is false for anonymous sessions.
func (s Session) HasRole(role Role) bool {
	return s.identity != nil && s.identity.Role == role
}

func (s Session) String() string {
	if s.identity == nil {
		return "anonymous"
	}
	return s.identity.String()
}

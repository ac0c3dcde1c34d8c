package guards

import (
	"testing"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
)

var (
	anon  = models.AnonymousSession()
	user  = models.AuthenticatedSession(models.Identity{SubjectID: 1, Role: models.RoleUser})
	admin = models.AuthenticatedSession(models.Identity{SubjectID: 2, Role: models.RoleAdmin})
)

func TestAuthenticated(t *testing.T) {
	g := Authenticated("/auth/login")

	assert.Equal(t, Deny("/auth/login"), g(anon, nil))
	assert.Equal(t, Allow(), g(user, nil))
	assert.Equal(t, Allow(), g(admin, nil))
}

func TestGuest(t *testing.T) {
	g := Guest("/home")

	assert.Equal(t, Allow(), g(anon, nil))
	assert.Equal(t, Deny("/home"), g(user, nil))
}

func TestRole(t *testing.T) {
	g := Role("/")
	adminOnly := map[string]string{MetaRole: "ADMIN"}

	assert.Equal(t, Allow(), g(admin, adminOnly))
	assert.Equal(t, Deny("/"), g(user, adminOnly))
	assert.Equal(t, Deny("/"), g(anon, adminOnly), "anonymous sessions hold no role")
	assert.Equal(t, Allow(), g(user, map[string]string{MetaRole: "ROLE_USER"}))
}

func TestRole_MissingMetaIsNoRequirement(t *testing.T) {
	g := Role("/")

	for _, meta := range []map[string]string{nil, {}, {MetaRole: ""}} {
		assert.Equal(t, Allow(), g(user, meta))
		assert.Equal(t, Allow(), g(admin, meta))
		assert.Equal(t, Allow(), g(anon, meta))
	}
}

func TestRole_UnknownRoleDenies(t *testing.T) {
	g := Role("/")

	assert.Equal(t, Deny("/"), g(admin, map[string]string{MetaRole: "ROOT"}))
	assert.Equal(t, Deny("/"), g(user, map[string]string{MetaRole: "ROOT"}))
}

func TestGuards_DoNotChangeSession(t *testing.T) {
	s := user
	for _, g := range []Guard{Authenticated("/a"), Guest("/b"), Role("/c")} {
		g(s, map[string]string{MetaRole: "ADMIN"})
	}
	assert.Equal(t, user, s)
}

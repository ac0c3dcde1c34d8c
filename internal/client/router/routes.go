package router

import (
	"github.com/dmitrijs2005/staffkeeper/internal/client/guards"
	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
)

// Well-known surfaces.
const (
	Landing  = "/"
	Login    = "/auth/login"
	Register = "/auth/register"
	Home     = "/home"
	// Neutral is where forbidden navigations end up.
	Neutral = "/"
)

// DefaultRoutes is the application route table.
func DefaultRoutes() []Route {
	auth := guards.Authenticated(Login)
	guest := guards.Guest(Home)
	admin := guards.Role(Neutral)
	adminOnly := map[string]string{guards.MetaRole: string(models.RoleAdmin)}

	return []Route{
		{Pattern: Landing, Name: "landing"},
		{Pattern: Login, Name: "login", Guards: []guards.Guard{guest}},
		{Pattern: Register, Name: "register", Guards: []guards.Guard{guest}},
		{Pattern: Home, Name: "home", Guards: []guards.Guard{auth}},
		{Pattern: "/employees", Name: "employees", Guards: []guards.Guard{auth}},
		{Pattern: "/employees/new", Name: "employee-new", Guards: []guards.Guard{auth, admin}, Meta: adminOnly},
		{Pattern: "/employees/{id}/edit", Name: "employee-edit", Guards: []guards.Guard{auth, admin}, Meta: adminOnly},
		{Pattern: "/admin", Name: "admin", Guards: []guards.Guard{auth, admin}, Meta: adminOnly},
	}
}

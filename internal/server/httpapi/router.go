package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps collects what NewRouter wires together. Optional parts are
// disabled when nil.
type RouterDeps struct {
	Users     UserService
	Employees EmployeeService
	Logger    logging.Logger

	AuthLimiter *RateLimiter
	Metrics     *Metrics
	Gatherer    prometheus.Gatherer
}

// NewRouter builds the API:
//
//	POST   /auth/login
//	POST   /auth/register
//	GET    /api/ping
//	GET    /api/employees
//	POST   /api/employees
//	GET    /api/employees/{id}
//	PUT    /api/employees/{id}
//	DELETE /api/employees/{id}
//	GET    /api/employees/manager/{managerId}
//	GET    /api/employees/company/{companyId}
//	GET    /metrics
func NewRouter(deps RouterDeps) http.Handler {
	h := NewHandler(deps.Users, deps.Employees, deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Route("/auth", func(r chi.Router) {
		if deps.AuthLimiter != nil {
			r.Use(deps.AuthLimiter.Middleware)
		}
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
	})

	r.Get("/api/ping", h.Ping)

	r.Route("/api/employees", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Get("/", h.ListEmployees)
		r.Post("/", h.CreateEmployee)
		r.Get("/manager/{managerId}", h.EmployeesByManager)
		r.Get("/company/{companyId}", h.EmployeesByCompany)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetEmployee)
			r.Put("/", h.UpdateEmployee)
			r.Delete("/", h.DeleteEmployee)
		})
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

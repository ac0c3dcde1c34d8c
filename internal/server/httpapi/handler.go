// Package httpapi exposes the user and employee services as a JSON REST API.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/apierr"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type UserService interface {
	Register(ctx context.Context, p wire.Profile) (*models.User, error)
	Login(ctx context.Context, creds wire.Credentials) (*wire.AuthResponse, error)
	Authenticate(token string) (wire.Identity, error)
}

type EmployeeService interface {
	List(ctx context.Context) ([]wire.Employee, error)
	Get(ctx context.Context, id int64) (*wire.Employee, error)
	Create(ctx context.Context, e wire.Employee) (*wire.Employee, error)
	Update(ctx context.Context, id int64, e wire.Employee) (*wire.Employee, error)
	Delete(ctx context.Context, id int64) error
	ByManager(ctx context.Context, managerID int64) ([]wire.Employee, error)
	ByCompany(ctx context.Context, companyID int64) ([]wire.Employee, error)
}

type Handler struct {
	users     UserService
	employees EmployeeService
	logger    logging.Logger
}

func NewHandler(users UserService, employees EmployeeService, logger logging.Logger) *Handler {
	return &Handler{users: users, employees: employees, logger: logger}
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds wire.Credentials
	if !h.decode(w, r, &creds) {
		return
	}
	resp, err := h.users.Login(r.Context(), creds)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var p wire.Profile
	if !h.decode(w, r, &p) {
		return
	}
	u, err := h.users.Register(r.Context(), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u.Identity())
}

// GET /api/ping
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.employees.List(r.Context())
	h.respond(w, r, http.StatusOK, list, err)
}

// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.employees.Get(r.Context(), id)
	h.respond(w, r, http.StatusOK, e, err)
}

// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var e wire.Employee
	if !h.decode(w, r, &e) {
		return
	}
	out, err := h.employees.Create(r.Context(), e)
	h.respond(w, r, http.StatusCreated, out, err)
}

// PUT /api/employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var e wire.Employee
	if !h.decode(w, r, &e) {
		return
	}
	out, err := h.employees.Update(r.Context(), id, e)
	h.respond(w, r, http.StatusOK, out, err)
}

// DELETE /api/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.employees.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/employees/manager/{managerId}
func (h *Handler) EmployeesByManager(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "managerId")
	if !ok {
		return
	}
	list, err := h.employees.ByManager(r.Context(), id)
	h.respond(w, r, http.StatusOK, list, err)
}

// GET /api/employees/company/{companyId}
func (h *Handler) EmployeesByCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "companyId")
	if !ok {
		return
	}
	list, err := h.employees.ByCompany(r.Context(), id)
	h.respond(w, r, http.StatusOK, list, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.fail(w, r, fmt.Errorf("%w: malformed request body", common.ErrValidation))
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		h.fail(w, r, fmt.Errorf("%w: %s must be a positive integer", common.ErrValidation, name))
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apierr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": apierr.Message(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package client

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
)

// Op names a logical backend operation independent of the transport.
type Op string

const (
	OpLogin              Op = "auth.login"
	OpRegister           Op = "auth.register"
	OpPing               Op = "ping"
	OpListEmployees      Op = "employees.list"
	OpGetEmployee        Op = "employees.get"
	OpCreateEmployee     Op = "employees.create"
	OpUpdateEmployee     Op = "employees.update"
	OpDeleteEmployee     Op = "employees.delete"
	OpEmployeesByManager Op = "employees.byManager"
	OpEmployeesByCompany Op = "employees.byCompany"
)

// Public reports whether op is sent without a bearer credential.
func (o Op) Public() bool {
	return o == OpLogin || o == OpRegister || o == OpPing
}

// Call is one outbound request. Response, when non-nil, must be a pointer
// the payload is decoded into.
type Call struct {
	Op       Op
	Params   map[string]string
	Request  any
	Response any
	// ID is the request id, set by the RequestID interceptor.
	ID string
}

// Public reports whether the call is made without a bearer credential.
func (c *Call) Public() bool {
	return c.Op.Public()
}

// Transport sends a call to the backend.
type Transport interface {
	Invoke(ctx context.Context, call *Call) error
	Close() error
}

// Invoker performs the rest of the chain.
type Invoker func(ctx context.Context, call *Call) error

// Interceptor observes or alters a call around next.
type Interceptor func(ctx context.Context, call *Call, next Invoker) error

// Chain composes interceptors around final. The first interceptor is the
// outermost one.
func Chain(final Invoker, interceptors ...Interceptor) Invoker {
	inv := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic, next := interceptors[i], inv
		inv = func(ctx context.Context, call *Call) error {
			return ic(ctx, call, next)
		}
	}
	return inv
}

// Channel sends every call through the same interceptor chain.
type Channel struct {
	transport Transport
	invoke    Invoker
}

func NewChannel(t Transport, interceptors ...Interceptor) *Channel {
	return &Channel{
		transport: t,
		invoke:    Chain(t.Invoke, interceptors...),
	}
}

// Do sends an arbitrary call through the chain.
func (c *Channel) Do(ctx context.Context, call *Call) error {
	return c.invoke(ctx, call)
}

func (c *Channel) Close() error {
	return c.transport.Close()
}

func (c *Channel) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, &Call{Op: OpLogin, Request: creds, Response: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Channel) Register(ctx context.Context, p models.Profile) error {
	return c.Do(ctx, &Call{Op: OpRegister, Request: p})
}

func (c *Channel) Ping(ctx context.Context) error {
	return c.Do(ctx, &Call{Op: OpPing})
}

func (c *Channel) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.Do(ctx, &Call{Op: OpListEmployees, Response: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Channel) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	var out models.Employee
	if err := c.Do(ctx, &Call{Op: OpGetEmployee, Params: idParam("id", id), Response: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Channel) CreateEmployee(ctx context.Context, e models.Employee) (*models.Employee, error) {
	var out models.Employee
	if err := c.Do(ctx, &Call{Op: OpCreateEmployee, Request: e, Response: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Channel) UpdateEmployee(ctx context.Context, id int64, e models.Employee) (*models.Employee, error) {
	var out models.Employee
	call := &Call{Op: OpUpdateEmployee, Params: idParam("id", id), Request: e, Response: &out}
	if err := c.Do(ctx, call); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Channel) DeleteEmployee(ctx context.Context, id int64) error {
	return c.Do(ctx, &Call{Op: OpDeleteEmployee, Params: idParam("id", id)})
}

func (c *Channel) EmployeesByManager(ctx context.Context, managerID int64) ([]models.Employee, error) {
	var out []models.Employee
	call := &Call{Op: OpEmployeesByManager, Params: idParam("managerId", managerID), Response: &out}
	if err := c.Do(ctx, call); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Channel) EmployeesByCompany(ctx context.Context, companyID int64) ([]models.Employee, error) {
	var out []models.Employee
	call := &Call{Op: OpEmployeesByCompany, Params: idParam("companyId", companyID), Response: &out}
	if err := c.Do(ctx, call); err != nil {
		return nil, err
	}
	return out, nil
}

func idParam(name string, id int64) map[string]string {
	return map[string]string{name: strconv.FormatInt(id, 10)}
}

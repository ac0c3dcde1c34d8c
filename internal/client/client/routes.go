package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/pbx"
)

type endpoint struct {
	method string
	path   string
	rpc    string
}

var endpoints = map[Op]endpoint{
	OpLogin:              {http.MethodPost, "/auth/login", pbx.Login},
	OpRegister:           {http.MethodPost, "/auth/register", pbx.Register},
	OpPing:               {http.MethodGet, "/api/ping", pbx.Ping},
	OpListEmployees:      {http.MethodGet, "/api/employees", pbx.ListEmployees},
	OpGetEmployee:        {http.MethodGet, "/api/employees/{id}", pbx.GetEmployee},
	OpCreateEmployee:     {http.MethodPost, "/api/employees", pbx.CreateEmployee},
	OpUpdateEmployee:     {http.MethodPut, "/api/employees/{id}", pbx.UpdateEmployee},
	OpDeleteEmployee:     {http.MethodDelete, "/api/employees/{id}", pbx.DeleteEmployee},
	OpEmployeesByManager: {http.MethodGet, "/api/employees/manager/{managerId}", pbx.EmployeesByManager},
	OpEmployeesByCompany: {http.MethodGet, "/api/employees/company/{companyId}", pbx.EmployeesByCompany},
}

func lookup(op Op) (endpoint, error) {
	ep, ok := endpoints[op]
	if !ok {
		return endpoint{}, fmt.Errorf("unknown operation %q", op)
	}
	return ep, nil
}

// expand substitutes {name} placeholders with escaped params.
func (ep endpoint) expand(params map[string]string) (string, error) {
	var b strings.Builder
	rest := ep.path
	for {
		i := strings.IndexByte(rest, '{')
		if i < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		j := strings.IndexByte(rest[i:], '}')
		if j < 0 {
			return "", fmt.Errorf("malformed path %q", ep.path)
		}
		name := rest[i+1 : i+j]
		v, ok := params[name]
		if !ok || v == "" {
			return "", fmt.Errorf("missing path parameter %q", name)
		}
		b.WriteString(rest[:i])
		b.WriteString(url.PathEscape(v))
		rest = rest[i+j+1:]
	}
}

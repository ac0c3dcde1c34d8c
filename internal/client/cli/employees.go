package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
)

const employeesPath = "/employees"

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// idArg returns the id in args[0], printing usage when it is missing or bad.
func (a *App) idArg(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		a.println("Usage:", usage)
		return 0, false
	}
	id, err := parseID(args[0])
	if err != nil {
		a.println(err.Error())
		return 0, false
	}
	return id, true
}

// List prints the directory, optionally filtered:
//
//	employees
//	employees manager <id>
//	employees company <id>
func (a *App) List(ctx context.Context, args []string) error {
	if ok, err := a.enter(ctx, employeesPath); !ok {
		return err
	}

	var (
		items []models.Employee
		err   error
	)
	switch {
	case len(args) == 0:
		items, err = a.employees.List(ctx)
	case len(args) == 2 && args[0] == "manager":
		id, perr := parseID(args[1])
		if perr != nil {
			a.println(perr.Error())
			return nil
		}
		items, err = a.employees.ByManager(ctx, id)
	case len(args) == 2 && args[0] == "company":
		id, perr := parseID(args[1])
		if perr != nil {
			a.println(perr.Error())
			return nil
		}
		items, err = a.employees.ByCompany(ctx, id)
	default:
		a.println("Usage: employees [manager <id> | company <id>]")
		return nil
	}
	if err != nil {
		a.report(err)
		return err
	}

	if len(items) == 0 {
		a.println("No employees.")
		return nil
	}
	for _, e := range items {
		a.println(formatEmployee(e))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "show <id>")
	if !ok {
		return nil
	}
	if ok, err := a.enter(ctx, employeesPath); !ok {
		return err
	}

	e, err := a.employees.Get(ctx, id)
	if err != nil {
		a.report(err)
		return err
	}
	a.println(formatEmployeeDetails(*e))
	return nil
}

// Add creates an employee from prompted fields. Administrators only.
func (a *App) Add(ctx context.Context) error {
	if ok, err := a.enter(ctx, employeesPath+"/new"); !ok {
		return err
	}

	e, err := a.readEmployee(models.Employee{})
	if err != nil {
		a.report(err)
		return err
	}

	created, err := a.employees.Create(ctx, e)
	if err != nil {
		a.report(err)
		return err
	}
	a.println(fmt.Sprintf("Employee %d created.", created.EmployeeID))
	return nil
}

// Edit updates an employee, offering the stored values as defaults.
// Administrators only.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "edit <id>")
	if !ok {
		return nil
	}
	if ok, err := a.enter(ctx, fmt.Sprintf("%s/%d/edit", employeesPath, id)); !ok {
		return err
	}

	current, err := a.employees.Get(ctx, id)
	if err != nil {
		a.report(err)
		return err
	}

	e, err := a.readEmployee(*current)
	if err != nil {
		a.report(err)
		return err
	}

	if _, err := a.employees.Update(ctx, id, e); err != nil {
		a.report(err)
		return err
	}
	a.println(fmt.Sprintf("Employee %d updated.", id))
	return nil
}

// Delete removes an employee. The backend decides whether the caller may.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "delete <id>")
	if !ok {
		return nil
	}
	if ok, err := a.enter(ctx, employeesPath); !ok {
		return err
	}

	if err := a.employees.Delete(ctx, id); err != nil {
		a.report(err)
		return err
	}
	a.println(fmt.Sprintf("Employee %d deleted.", id))
	return nil
}

// readEmployee prompts for the editable fields, starting from base.
func (a *App) readEmployee(base models.Employee) (models.Employee, error) {
	e := base

	text := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &e.FirstName},
		{"Last name", &e.LastName},
		{"Email", &e.Email},
		{"Phone", &e.PhoneNumber},
		{"Bank name", &e.BankName},
		{"Bank account number", &e.BankAccountNumber},
		{"PAN number", &e.PANNumber},
	}
	for _, f := range text {
		v, err := getTextWithDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return models.Employee{}, err
		}
		*f.dst = v
	}

	hired, err := getTextWithDefault(a.reader, "Hire date (YYYY-MM-DD)", e.HireDate.String(), a.out)
	if err != nil {
		return models.Employee{}, err
	}
	if hired != "" {
		d, err := models.ParseDate(hired)
		if err != nil {
			return models.Employee{}, err
		}
		e.HireDate = d
	}

	salary, err := getTextWithDefault(a.reader, "Salary", strconv.FormatFloat(e.Salary, 'f', -1, 64), a.out)
	if err != nil {
		return models.Employee{}, err
	}
	e.Salary, err = strconv.ParseFloat(salary, 64)
	if err != nil {
		return models.Employee{}, fmt.Errorf("invalid salary %q", salary)
	}

	for _, f := range []struct {
		prompt string
		dst    **int64
	}{
		{"Manager id", &e.ManagerID},
		{"Company id", &e.CompanyID},
	} {
		cur := ""
		if *f.dst != nil {
			cur = strconv.FormatInt(**f.dst, 10)
		}
		v, err := getTextWithDefault(a.reader, f.prompt+" (optional)", cur, a.out)
		if err != nil {
			return models.Employee{}, err
		}
		if v == "" {
			*f.dst = nil
			continue
		}
		id, err := parseID(v)
		if err != nil {
			return models.Employee{}, err
		}
		*f.dst = &id
	}

	return e, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
)

// EmployeeAPI is the employee side of the network channel.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)
	CreateEmployee(ctx context.Context, e models.Employee) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, e models.Employee) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	EmployeesByManager(ctx context.Context, managerID int64) ([]models.Employee, error)
	EmployeesByCompany(ctx context.Context, companyID int64) ([]models.Employee, error)
}

// EmployeeService validates employee records before they reach the backend.
// Authorization failures are handled by the channel's interceptors; this
// service only returns them.
type EmployeeService struct {
	api    EmployeeAPI
	logger logging.Logger
}

func NewEmployeeService(api EmployeeAPI, logger logging.Logger) *EmployeeService {
	return &EmployeeService{api: api, logger: logger.With("module", "employees")}
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.api.ListEmployees(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	if id <= 0 {
		return nil, &ValidationError{Field: "id", Message: "must be positive"}
	}
	return s.api.GetEmployee(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, e models.Employee) (*models.Employee, error) {
	if err := ValidateEmployee(e); err != nil {
		return nil, err
	}
	e.EmployeeID = 0
	out, err := s.api.CreateEmployee(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.logger.Info(ctx, "employee created", "employee_id", out.EmployeeID)
	return out, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, e models.Employee) (*models.Employee, error) {
	if id <= 0 {
		return nil, &ValidationError{Field: "id", Message: "must be positive"}
	}
	if err := ValidateEmployee(e); err != nil {
		return nil, err
	}
	e.EmployeeID = id
	out, err := s.api.UpdateEmployee(ctx, id, e)
	if err != nil {
		return nil, fmt.Errorf("update employee %d: %w", id, err)
	}
	return out, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Message: "must be positive"}
	}
	if err := s.api.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	s.logger.Info(ctx, "employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeService) ByManager(ctx context.Context, managerID int64) ([]models.Employee, error) {
	return s.api.EmployeesByManager(ctx, managerID)
}

func (s *EmployeeService) ByCompany(ctx context.Context, companyID int64) ([]models.Employee, error) {
	return s.api.EmployeesByCompany(ctx, companyID)
}

// ValidateEmployee checks the fields the backend requires.
func ValidateEmployee(e models.Employee) error {
	required := []struct {
		field, value string
	}{
		{"firstName", e.FirstName},
		{"lastName", e.LastName},
		{"bankName", e.BankName},
		{"bankAccountNumber", e.BankAccountNumber},
		{"panNumber", e.PANNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: "is required"}
		}
	}
	if err := validateEmail(e.Email); err != nil {
		return err
	}
	if e.HireDate.IsZero() {
		return &ValidationError{Field: "hireDate", Message: "is required"}
	}
	if e.Salary < 0 {
		return &ValidationError{Field: "salary", Message: "must not be negative"}
	}
	return nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/auth"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/repomanager"
)

// EmployeeService serves the employee directory. Every operation needs an
// authenticated identity in the context; mutations need ROLE_ADMIN.
type EmployeeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewEmployeeService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *EmployeeService {
	return &EmployeeService{db: db, repomanager: m, logger: logger.With("module", "employees")}
}

func (s *EmployeeService) reader(ctx context.Context) error {
	if _, ok := auth.IdentityFrom(ctx); !ok {
		return common.ErrUnauthorized
	}
	return nil
}

func (s *EmployeeService) writer(ctx context.Context) error {
	id, ok := auth.IdentityFrom(ctx)
	if !ok {
		return common.ErrUnauthorized
	}
	if id.Role != wire.RoleAdmin {
		return common.ErrForbidden
	}
	return nil
}

func (s *EmployeeService) List(ctx context.Context) ([]wire.Employee, error) {
	if err := s.reader(ctx); err != nil {
		return nil, err
	}
	return s.repomanager.Employees(s.db).List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*wire.Employee, error) {
	if err := s.reader(ctx); err != nil {
		return nil, err
	}
	return s.repomanager.Employees(s.db).Get(ctx, id)
}

func (s *EmployeeService) ByManager(ctx context.Context, managerID int64) ([]wire.Employee, error) {
	if err := s.reader(ctx); err != nil {
		return nil, err
	}
	return s.repomanager.Employees(s.db).ByManager(ctx, managerID)
}

func (s *EmployeeService) ByCompany(ctx context.Context, companyID int64) ([]wire.Employee, error) {
	if err := s.reader(ctx); err != nil {
		return nil, err
	}
	return s.repomanager.Employees(s.db).ByCompany(ctx, companyID)
}

func (s *EmployeeService) Create(ctx context.Context, e wire.Employee) (*wire.Employee, error) {
	if err := s.writer(ctx); err != nil {
		return nil, err
	}
	if err := checkEmployee(e); err != nil {
		return nil, err
	}

	out, err := s.repomanager.Employees(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating employee: %w", err)
	}
	s.logger.Info(ctx, "employee created", "employee_id", out.EmployeeID)
	return out, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, e wire.Employee) (*wire.Employee, error) {
	if err := s.writer(ctx); err != nil {
		return nil, err
	}
	if err := checkEmployee(e); err != nil {
		return nil, err
	}

	out, err := s.repomanager.Employees(s.db).Update(ctx, id, e)
	if err != nil {
		return nil, fmt.Errorf("error updating employee %d: %w", id, err)
	}
	return out, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.writer(ctx); err != nil {
		return err
	}
	if err := s.repomanager.Employees(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting employee %d: %w", id, err)
	}
	s.logger.Info(ctx, "employee deleted", "employee_id", id)
	return nil
}

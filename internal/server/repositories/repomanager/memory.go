package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/staffkeeper/internal/dbx"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/employees"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same process-local repositories
// regardless of the DBTX passed in. It has no schema.
type MemoryRepositoryManager struct {
	users     *users.MemoryRepository
	employees *employees.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:     users.NewMemoryRepository(),
		employees: employees.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Employees(dbx.DBTX) employees.Repository { return m.employees }

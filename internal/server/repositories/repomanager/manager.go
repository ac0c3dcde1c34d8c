// Package repomanager vends repository implementations for the configured
// storage backend and applies the PostgreSQL schema through goose.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/staffkeeper/internal/dbx"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/employees"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Employees(db dbx.DBTX) employees.Repository
}

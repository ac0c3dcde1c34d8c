// Package employees stores the employee directory. Records are the wire
// models.Employee; the repository owns EmployeeID and the timestamps.
package employees

import (
	"context"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
)

type Repository interface {
	List(ctx context.Context) ([]wire.Employee, error)
	// Get returns common.ErrNotFound for unknown IDs, as do Update and Delete.
	Get(ctx context.Context, id int64) (*wire.Employee, error)
	Create(ctx context.Context, e wire.Employee) (*wire.Employee, error)
	Update(ctx context.Context, id int64, e wire.Employee) (*wire.Employee, error)
	Delete(ctx context.Context, id int64) error
	ByManager(ctx context.Context, managerID int64) ([]wire.Employee, error)
	ByCompany(ctx context.Context, companyID int64) ([]wire.Employee, error)
}

package employees

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/dbx"
)

// PostgresRepository keeps the searchable keys in columns and the rest of the
// record as a JSONB document.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, data, created_at, updated_at FROM employees`

func (r *PostgresRepository) List(ctx context.Context) ([]wire.Employee, error) {
	return r.query(ctx, selectColumns+` ORDER BY id`)
}

func (r *PostgresRepository) ByManager(ctx context.Context, managerID int64) ([]wire.Employee, error) {
	return r.query(ctx, selectColumns+` WHERE manager_id = $1 ORDER BY id`, managerID)
}

func (r *PostgresRepository) ByCompany(ctx context.Context, companyID int64) ([]wire.Employee, error) {
	return r.query(ctx, selectColumns+` WHERE company_id = $1 ORDER BY id`, companyID)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*wire.Employee, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e wire.Employee) (*wire.Employee, error) {
	data, err := encode(e)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO employees (manager_id, company_id, data)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`

	var created, updated time.Time
	err = r.db.QueryRowContext(ctx, query, nullable(e.ManagerID), nullable(e.CompanyID), data).
		Scan(&e.EmployeeID, &created, &updated)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.CreatedAt, e.UpdatedAt = &created, &updated

	return &e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, e wire.Employee) (*wire.Employee, error) {
	data, err := encode(e)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE employees SET manager_id = $1, company_id = $2, data = $3, updated_at = now()
		 WHERE id = $4
		 RETURNING created_at, updated_at`

	var created, updated time.Time
	err = r.db.QueryRowContext(ctx, query, nullable(e.ManagerID), nullable(e.CompanyID), data, id).
		Scan(&created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	e.EmployeeID = id
	e.CreatedAt, e.UpdatedAt = &created, &updated

	return &e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]wire.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []wire.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (*wire.Employee, error) {
	var (
		id               int64
		data             []byte
		created, updated time.Time
	)
	if err := s.Scan(&id, &data, &created, &updated); err != nil {
		return nil, err
	}

	var e wire.Employee
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode employee %d: %w", id, err)
	}
	e.EmployeeID = id
	e.CreatedAt, e.UpdatedAt = &created, &updated
	return &e, nil
}

// encode drops the fields owned by the table columns.
func encode(e wire.Employee) ([]byte, error) {
	e.EmployeeID = 0
	e.CreatedAt, e.UpdatedAt = nil, nil
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode employee: %w", err)
	}
	return data, nil
}

func nullable(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

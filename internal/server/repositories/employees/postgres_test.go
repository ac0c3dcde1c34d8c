package employees

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery    = `(?s)^INSERT\s+INTO\s+employees\s*\(manager_id,\s*company_id,\s*data\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	updateQuery    = `(?s)^UPDATE\s+employees\s+SET\s+manager_id\s*=\s*\$1,\s*company_id\s*=\s*\$2,\s*data\s*=\s*\$3,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$4\s+RETURNING\s+created_at,\s*updated_at\s*$`
	deleteQuery    = `(?s)^DELETE\s+FROM\s+employees\s+WHERE\s+id\s*=\s*\$1\s*$`
	listQuery      = `(?s)^SELECT\s+id,\s*data,\s*created_at,\s*updated_at\s+FROM\s+employees\s+ORDER\s+BY\s+id\s*$`
	getQuery       = `(?s)^SELECT\s+id,\s*data,\s*created_at,\s*updated_at\s+FROM\s+employees\s+WHERE\s+id\s*=\s*\$1\s*$`
	byManagerQuery = `(?s)^SELECT\s+id,\s*data,\s*created_at,\s*updated_at\s+FROM\s+employees\s+WHERE\s+manager_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`
	byCompanyQuery = `(?s)^SELECT\s+id,\s*data,\s*created_at,\s*updated_at\s+FROM\s+employees\s+WHERE\s+company_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`
)

var rowColumns = []string{"id", "data", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func ptr(v int64) *int64 { return &v }

func document(t *testing.T, e wire.Employee) []byte {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return b
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(insertQuery).
		WithArgs(int64(3), nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), ts, ts))

	got, err := repo.Create(context.Background(), wire.Employee{EmployeeID: 99, FirstName: "Ann", ManagerID: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.EmployeeID)
	require.NotNil(t, got.CreatedAt)
	assert.Equal(t, ts, *got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), wire.Employee{})
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestPostgresGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getQuery).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(int64(5), document(t, wire.Employee{FirstName: "Bo", CompanyID: ptr(2)}), ts, ts))

	got, err := repo.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.EmployeeID)
	assert.Equal(t, "Bo", got.FirstName)
	assert.Equal(t, ptr(2), got.CompanyID)
}

func TestPostgresGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(getQuery).WithArgs(int64(5)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 5)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostgresGet_CorruptDocument(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Now()

	mock.ExpectQuery(getQuery).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(int64(5), []byte("{"), ts, ts))

	_, err := repo.Get(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode employee 5")
}

func TestPostgresUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(updateQuery).
		WithArgs(nil, int64(4), sqlmock.AnyArg(), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, updated))

	got, err := repo.Update(context.Background(), 8, wire.Employee{LastName: "Ng", CompanyID: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.EmployeeID)
	assert.Equal(t, created, *got.CreatedAt)
	assert.Equal(t, updated, *got.UpdatedAt)
}

func TestPostgresUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(updateQuery).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Update(context.Background(), 8, wire.Employee{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQuery).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQuery).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQuery).WithArgs(int64(3)).WillReturnError(errors.New("boom"))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), common.ErrNotFound)
	err := repo.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestPostgresQueries(t *testing.T) {
	ts := time.Now().UTC()

	tests := []struct {
		name  string
		query string
		args  []driver.Value
		call  func(r *PostgresRepository) ([]wire.Employee, error)
	}{
		{"list", listQuery, nil, func(r *PostgresRepository) ([]wire.Employee, error) {
			return r.List(context.Background())
		}},
		{"by manager", byManagerQuery, []driver.Value{int64(3)}, func(r *PostgresRepository) ([]wire.Employee, error) {
			return r.ByManager(context.Background(), 3)
		}},
		{"by company", byCompanyQuery, []driver.Value{int64(4)}, func(r *PostgresRepository) ([]wire.Employee, error) {
			return r.ByCompany(context.Background(), 4)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)

			exp := mock.ExpectQuery(tt.query)
			if tt.args != nil {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(sqlmock.NewRows(rowColumns).
				AddRow(int64(1), document(t, wire.Employee{FirstName: "A"}), ts, ts).
				AddRow(int64(2), document(t, wire.Employee{FirstName: "B"}), ts, ts))

			got, err := tt.call(repo)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, int64(1), got[0].EmployeeID)
			assert.Equal(t, "B", got[1].FirstName)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows(rowColumns))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

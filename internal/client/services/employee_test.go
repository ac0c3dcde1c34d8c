package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeAPI struct {
	created *models.Employee
	updated *models.Employee
	deleted int64
	err     error
	calls   int
}

func (f *fakeEmployeeAPI) ListEmployees(context.Context) ([]models.Employee, error) {
	f.calls++
	return []models.Employee{{EmployeeID: 1}}, f.err
}

func (f *fakeEmployeeAPI) GetEmployee(_ context.Context, id int64) (*models.Employee, error) {
	f.calls++
	return &models.Employee{EmployeeID: id}, f.err
}

func (f *fakeEmployeeAPI) CreateEmployee(_ context.Context, e models.Employee) (*models.Employee, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.created = &e
	e.EmployeeID = 100
	return &e, nil
}

func (f *fakeEmployeeAPI) UpdateEmployee(_ context.Context, id int64, e models.Employee) (*models.Employee, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &e
	return &e, nil
}

func (f *fakeEmployeeAPI) DeleteEmployee(_ context.Context, id int64) error {
	f.calls++
	f.deleted = id
	return f.err
}

func (f *fakeEmployeeAPI) EmployeesByManager(_ context.Context, id int64) ([]models.Employee, error) {
	f.calls++
	return []models.Employee{{EmployeeID: 2, ManagerID: &id}}, f.err
}

func (f *fakeEmployeeAPI) EmployeesByCompany(_ context.Context, id int64) ([]models.Employee, error) {
	f.calls++
	return []models.Employee{{EmployeeID: 3, CompanyID: &id}}, f.err
}

func validEmployee() models.Employee {
	return models.Employee{
		EmployeeID:        55,
		FirstName:         "Ada",
		LastName:          "Lovelace",
		Email:             "ada@example.com",
		HireDate:          models.NewDate(2020, time.January, 2),
		Salary:            1000,
		BankName:          "First Bank",
		BankAccountNumber: "123456",
		PANNumber:         "ABCDE1234F",
	}
}

func TestValidateEmployee(t *testing.T) {
	require.NoError(t, ValidateEmployee(validEmployee()))

	cases := map[string]func(e *models.Employee){
		"firstName":         func(e *models.Employee) { e.FirstName = " " },
		"lastName":          func(e *models.Employee) { e.LastName = "" },
		"bankName":          func(e *models.Employee) { e.BankName = "" },
		"bankAccountNumber": func(e *models.Employee) { e.BankAccountNumber = "" },
		"panNumber":         func(e *models.Employee) { e.PANNumber = "" },
		"email":             func(e *models.Employee) { e.Email = "nope" },
		"hireDate":          func(e *models.Employee) { e.HireDate = models.Date{} },
		"salary":            func(e *models.Employee) { e.Salary = -1 },
	}
	for field, mutate := range cases {
		e := validEmployee()
		mutate(&e)
		err := ValidateEmployee(e)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve, field)
		assert.Equal(t, field, ve.Field)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
}

func TestEmployeeService_CreateClearsID(t *testing.T) {
	api := &fakeEmployeeAPI{}
	svc := NewEmployeeService(api, logging.Discard())

	out, err := svc.Create(context.Background(), validEmployee())
	require.NoError(t, err)
	assert.Equal(t, int64(100), out.EmployeeID)
	assert.Zero(t, api.created.EmployeeID)
}

func TestEmployeeService_InvalidInputSkipsNetwork(t *testing.T) {
	api := &fakeEmployeeAPI{}
	svc := NewEmployeeService(api, logging.Discard())
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Employee{})
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Update(ctx, 0, validEmployee())
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Get(ctx, -1)
	require.ErrorIs(t, err, common.ErrValidation)
	require.ErrorIs(t, svc.Delete(ctx, 0), common.ErrValidation)

	assert.Zero(t, api.calls)
}

func TestEmployeeService_UpdateSetsID(t *testing.T) {
	api := &fakeEmployeeAPI{}
	svc := NewEmployeeService(api, logging.Discard())

	_, err := svc.Update(context.Background(), 9, validEmployee())
	require.NoError(t, err)
	assert.Equal(t, int64(9), api.updated.EmployeeID)
}

func TestEmployeeService_WrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	api := &fakeEmployeeAPI{err: boom}
	svc := NewEmployeeService(api, logging.Discard())

	err := svc.Delete(context.Background(), 4)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "delete employee 4")
}

func TestEmployeeService_Queries(t *testing.T) {
	api := &fakeEmployeeAPI{}
	svc := NewEmployeeService(api, logging.Discard())
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	byMgr, err := svc.ByManager(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), *byMgr[0].ManagerID)

	byCo, err := svc.ByCompany(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(8), *byCo[0].CompanyID)

	e, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), e.EmployeeID)
}

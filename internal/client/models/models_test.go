package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "ROLE_USER", want: RoleUser},
		{in: "ROLE_ADMIN", want: RoleAdmin},
		{in: "admin", want: RoleAdmin},
		{in: " User ", want: RoleUser},
		{in: "ROLE_ROOT", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSession_AuthenticatedIffIdentityPresent(t *testing.T) {
	sessions := []Session{
		AnonymousSession(),
		{},
		AuthenticatedSession(Identity{SubjectID: 1, Role: RoleUser}),
		AuthenticatedSession(Identity{SubjectID: 2, Role: RoleAdmin}),
	}
	for _, s := range sessions {
		_, ok := s.Identity()
		assert.Equal(t, ok, s.Authenticated(), s.String())
	}
}

func TestSession_IdentityIsACopy(t *testing.T) {
	s := AuthenticatedSession(Identity{SubjectID: 1, Role: RoleUser})

	id, _ := s.Identity()
	id.Role = RoleAdmin

	assert.False(t, s.HasRole(RoleAdmin))
	assert.True(t, s.HasRole(RoleUser))
}

func TestSession_HasRole_AnonymousIsFalse(t *testing.T) {
	assert.False(t, AnonymousSession().HasRole(RoleUser))
	assert.False(t, AnonymousSession().HasRole(RoleAdmin))
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, time.March, 5))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2021-12-31"`), &d))
	assert.Equal(t, "2021-12-31", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2021-12-31T10:00:00Z"`), &d))
	assert.Equal(t, "2021-12-31", d.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"31/12/2021"`), &d))
}

func TestEmployee_JSONFieldNames(t *testing.T) {
	mgr := int64(3)
	e := Employee{
		EmployeeID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		HireDate: NewDate(2020, time.January, 2), ManagerID: &mgr, PANNumber: "ABCDE1234F",
	}
	b, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, float64(7), m["employeeId"])
	assert.Equal(t, "2020-01-02", m["hireDate"])
	assert.Equal(t, float64(3), m["managerId"])
	assert.Equal(t, "ABCDE1234F", m["panNumber"])
	assert.NotContains(t, m, "dateOfBirth")
	assert.Equal(t, "Ada Lovelace", e.FullName())
}

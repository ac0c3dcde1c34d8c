package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	// The backend may send full timestamps for date fields.
	if len(*s) > len(dateLayout) {
		t, err := time.Parse(time.RFC3339, *s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", *s, err)
		}
		*d = Date{Time: t.UTC().Truncate(24 * time.Hour)}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Employee is the directory record managed through the backend API.
type Employee struct {
	EmployeeID        int64      `json:"employeeId,omitempty"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	PhoneNumber       string     `json:"phoneNumber,omitempty"`
	DateOfBirth       *Date      `json:"dateOfBirth,omitempty"`
	Gender            string     `json:"gender,omitempty"`
	DesignationID     *int64     `json:"designationId,omitempty"`
	HireDate          Date       `json:"hireDate"`
	Salary            float64    `json:"salary"`
	ManagerID         *int64     `json:"managerId,omitempty"`
	CompanyID         *int64     `json:"companyId,omitempty"`
	ProjectID         *int64     `json:"projectId,omitempty"`
	BankName          string     `json:"bankName"`
	BankAccountNumber string     `json:"bankAccountNumber"`
	IFSCCode          string     `json:"ifscCode,omitempty"`
	PANNumber         string     `json:"panNumber"`
	PhotoURL          string     `json:"photoUrl,omitempty"`
	LinkedinURL       string     `json:"linkedinUrl,omitempty"`
	GithubURL         string     `json:"githubUrl,omitempty"`
	Skills            string     `json:"skills,omitempty"`
	Domain            string     `json:"domain,omitempty"`
	Status            string     `json:"status,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

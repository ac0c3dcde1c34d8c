package services

import (
	"fmt"
	"net/mail"
	"strings"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
)

const minPasswordLen = 6

func invalid(field, msg string) error {
	return fmt.Errorf("%w: %s %s", common.ErrValidation, field, msg)
}

func checkEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return invalid("email", "is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

func checkPassword(password string) error {
	if len([]rune(password)) < minPasswordLen {
		return invalid("password", "must be at least 6 characters")
	}
	return nil
}

func checkEmployee(e wire.Employee) error {
	for field, v := range map[string]string{
		"firstName":         e.FirstName,
		"lastName":          e.LastName,
		"bankName":          e.BankName,
		"bankAccountNumber": e.BankAccountNumber,
		"panNumber":         e.PANNumber,
	} {
		if strings.TrimSpace(v) == "" {
			return invalid(field, "is required")
		}
	}
	if err := checkEmail(e.Email); err != nil {
		return err
	}
	if e.HireDate.IsZero() {
		return invalid("hireDate", "is required")
	}
	if e.Salary < 0 {
		return invalid("salary", "must not be negative")
	}
	return nil
}

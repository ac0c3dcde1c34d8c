package services

import (
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
)

const minPasswordLen = 6

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "is required"}
	}
	if len([]rune(password)) < minPasswordLen {
		return &ValidationError{Field: "password", Message: "must be at least 6 characters"}
	}
	return nil
}

// ValidateCredentials checks the login form.
func ValidateCredentials(c models.Credentials) error {
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	return validatePassword(c.Password)
}

// ValidateProfile checks the registration form.
func ValidateProfile(p models.Profile) error {
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	return validatePassword(p.Password)
}

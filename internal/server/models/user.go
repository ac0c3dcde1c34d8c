// Package models holds the server-side records. Wire types shared with the
// client live in internal/client/models.
package models

import wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"

// User is an account of the identity provider.
type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Role         wire.Role
}

// Identity returns the subject the user authenticates as.
func (u *User) Identity() wire.Identity {
	return wire.Identity{SubjectID: u.ID, Role: u.Role}
}

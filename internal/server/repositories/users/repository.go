package users

import (
	"context"

	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
)

// Repository stores accounts. Emails are unique, compared case-insensitively.
type Repository interface {
	// Create stores u and returns it with its ID set. Duplicate emails
	// yield common.ErrAlreadyExists.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// GetByEmail returns common.ErrNotFound when no account matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Package services contains server-side business logic: accounts and token
// issuance in UserService, the employee directory in EmployeeService.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	wire "github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/auth"
	"github.com/dmitrijs2005/staffkeeper/internal/server/config"
	"github.com/dmitrijs2005/staffkeeper/internal/server/models"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// UserService registers accounts, verifies passwords and mints access tokens.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
	logger                logging.Logger

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService constructs a UserService. db may be nil for in-memory
// repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            bcrypt.DefaultCost,
		logger:                logger.With("module", "users"),
	}
}

func (s *UserService) hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
}

// Register creates a ROLE_USER account.
func (s *UserService) Register(ctx context.Context, p wire.Profile) (*models.User, error) {
	return s.create(ctx, p, wire.RoleUser)
}

func (s *UserService) create(ctx context.Context, p wire.Profile, role wire.Role) (*models.User, error) {
	if err := checkEmail(p.Email); err != nil {
		return nil, err
	}
	if err := checkPassword(p.Password); err != nil {
		return nil, err
	}

	hash, err := s.hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         role,
	}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// EnsureAdmin creates an administrator account unless the email is taken.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.create(ctx, wire.Profile{Email: email, Password: password}, wire.RoleAdmin)
	if errors.Is(err, common.ErrAlreadyExists) {
		return nil
	}
	return err
}

// Login verifies the credentials and returns a signed token with the
// account's identity. Unknown emails and wrong passwords both yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, creds wire.Credentials) (*wire.AuthResponse, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(creds.Password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	id := user.Identity()
	token, err := auth.GenerateToken(id, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &wire.AuthResponse{Token: token, User: &id}, nil
}

// Authenticate verifies a bearer token.
func (s *UserService) Authenticate(token string) (wire.Identity, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

func (s *UserService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hash("placeholder-password")
	})
	return s.dummyHash
}

// Package services contains the application services of the StaffKeeper
// client. This file defines the authentication service: bootstrap from the
// credential store, login, register, logout and role checks.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/staffkeeper/internal/client/identity"
	"github.com/dmitrijs2005/staffkeeper/internal/client/metrics"
	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
)

// Authenticator is the identity provider side of the network channel.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, p models.Profile) error
}

// CredentialStore is the durable credential record.
type CredentialStore interface {
	GetToken(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, token string, id models.Identity) error
	ClearAll(ctx context.Context) error
}

// Navigator moves the application to another surface.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

type Option func(*AuthService)

// WithNavigator makes Logout navigate to landing.
func WithNavigator(nav Navigator, landing string) Option {
	return func(a *AuthService) {
		a.nav = nav
		a.landing = landing
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *AuthService) { a.metrics = m }
}

// AuthService is the only writer of the credential store and the session
// state.
//
// Logins are fenced by generation: every Login takes a new generation and
// its result is only published if no later Login started meanwhile.
// Session subscribers are notified while the service lock is held, so they
// must not call Login, Logout or Bootstrap.
type AuthService struct {
	api     Authenticator
	store   CredentialStore
	decoder identity.Decoder
	session *SessionState
	nav     Navigator
	landing string
	metrics *metrics.Metrics
	logger  logging.Logger

	mu         sync.Mutex
	generation uint64
	token      atomic.Value
}

func NewAuthService(
	api Authenticator,
	store CredentialStore,
	decoder identity.Decoder,
	session *SessionState,
	logger logging.Logger,
	opts ...Option,
) *AuthService {
	a := &AuthService{
		api:     api,
		store:   store,
		decoder: decoder,
		session: session,
		logger:  logger.With("module", "auth"),
	}
	a.token.Store("")
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session returns the state this service publishes to.
func (a *AuthService) Session() *SessionState {
	return a.session
}

// AccessToken returns the credential of the live session, "" when anonymous.
func (a *AuthService) AccessToken() string {
	return a.token.Load().(string)
}

// HasRole reads the session snapshot.
func (a *AuthService) HasRole(role models.Role) bool {
	return a.session.HasRole(role)
}

// Bootstrap rehydrates the session from the credential store. Failures are
// not reported: an unreadable or undecodable record leaves the session
// anonymous and the store cleared.
func (a *AuthService) Bootstrap(ctx context.Context) models.Session {
	a.mu.Lock()
	gen := a.generation
	a.mu.Unlock()

	token, ok, err := a.store.GetToken(ctx)
	if err != nil {
		a.logger.Warn(ctx, "credential store unreadable, starting anonymous", "error", err)
		a.invalidate(ctx)
		return a.session.Current()
	}
	if !ok {
		a.logger.Debug(ctx, "no stored credential")
		return a.session.Current()
	}

	id, err := a.decoder.Decode(ctx, token, nil)
	if err != nil {
		a.logger.Warn(ctx, "stored credential rejected, clearing", "error", err, "strategy", a.decoder.Strategy())
		a.invalidate(ctx)
		return a.session.Current()
	}

	a.mu.Lock()
	if gen == a.generation {
		a.token.Store(token)
		a.session.publish(models.AuthenticatedSession(id))
		a.logger.Info(ctx, "session restored", "subject", id.SubjectID, "role", id.Role)
	}
	a.mu.Unlock()

	return a.session.Current()
}

// Login authenticates creds. On any failure the session and the store are
// left as they were and a *LoginError is returned.
func (a *AuthService) Login(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	if err := ValidateCredentials(creds); err != nil {
		return models.Identity{}, a.loginFailed(ctx, err, metrics.LoginFailure)
	}

	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		return models.Identity{}, a.loginFailed(ctx, err, metrics.LoginFailure)
	}

	token := resp.Token
	if token == "" {
		if a.decoder.Strategy() != identity.StrategyCached {
			err := fmt.Errorf("empty token in login response: %w", common.ErrDecode)
			return models.Identity{}, a.loginFailed(ctx, err, metrics.LoginFailure)
		}
		token = identity.PlaceholderToken()
	}

	id, err := a.decoder.Decode(ctx, token, resp.User)
	if err != nil {
		return models.Identity{}, a.loginFailed(ctx, err, metrics.LoginFailure)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		err := fmt.Errorf("login generation %d replaced by %d: %w", gen, a.generation, common.ErrSuperseded)
		return models.Identity{}, a.loginFailed(ctx, err, metrics.LoginSuperseded)
	}

	if err := a.store.Save(ctx, token, id); err != nil {
		le := &LoginError{Message: msgStorage, Err: fmt.Errorf("persist credential: %w", err)}
		a.metrics.ObserveLogin(metrics.LoginFailure)
		a.logger.Error(ctx, "login succeeded but credential could not be saved", "error", err)
		return models.Identity{}, le
	}

	a.token.Store(token)
	a.session.publish(models.AuthenticatedSession(id))
	a.metrics.ObserveLogin(metrics.LoginSuccess)
	a.logger.Info(ctx, "logged in", "subject", id.SubjectID, "role", id.Role)

	return id, nil
}

func (a *AuthService) loginFailed(ctx context.Context, err error, result string) error {
	a.metrics.ObserveLogin(result)
	if errors.Is(err, context.Canceled) {
		a.logger.Debug(ctx, "login canceled")
	} else {
		a.logger.Warn(ctx, "login failed", "error", err)
	}
	return &LoginError{Message: loginMessage(err), Err: err}
}

// Register creates an account. It never changes the session.
func (a *AuthService) Register(ctx context.Context, p models.Profile) error {
	if err := ValidateProfile(p); err != nil {
		return &RegisterError{Message: registerMessage(err), Err: err}
	}

	if err := a.api.Register(ctx, p); err != nil {
		a.logger.Warn(ctx, "registration failed", "error", err)
		return &RegisterError{Message: registerMessage(err), Err: err}
	}

	a.logger.Info(ctx, "registered")
	return nil
}

// Logout clears the store, publishes the anonymous session and navigates
// to the landing surface. It is safe to call when nobody is signed in. The
// session is invalidated even when clearing the store fails; that error is
// returned.
func (a *AuthService) Logout(ctx context.Context) error {
	err := a.invalidate(ctx)
	a.metrics.ObserveLogout()
	a.logger.Info(ctx, "logged out")
	return err
}

func (a *AuthService) invalidate(ctx context.Context) error {
	a.mu.Lock()
	err := a.store.ClearAll(ctx)
	if err != nil {
		err = fmt.Errorf("clear credential store: %w", err)
		a.logger.Error(ctx, "could not clear credential store", "error", err)
	}
	a.token.Store("")
	a.session.publish(models.AnonymousSession())
	a.mu.Unlock()

	if a.nav != nil {
		if navErr := a.nav.Navigate(ctx, a.landing); navErr != nil {
			a.logger.Warn(ctx, "navigation after logout failed", "error", navErr)
		}
	}
	return err
}

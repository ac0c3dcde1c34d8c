package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, sub string, role models.Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "role": string(role)}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

type fakeAPI struct {
	mu sync.Mutex

	loginResp map[string]*models.AuthResponse
	loginErr  error
	// held logins block until release is closed; entered is signalled first.
	held    map[string]bool
	entered chan string
	release chan struct{}

	registerErr error

	loginCalls    int
	registerCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		loginResp: map[string]*models.AuthResponse{},
		held:      map[string]bool{},
		entered:   make(chan string, 4),
		release:   make(chan struct{}),
	}
}

func (f *fakeAPI) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.mu.Lock()
	f.loginCalls++
	held := f.held[creds.Email]
	resp := f.loginResp[creds.Email]
	err := f.loginErr
	f.mu.Unlock()

	if held {
		f.entered <- creds.Email
		<-f.release
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (f *fakeAPI) Register(ctx context.Context, p models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	return f.registerErr
}

type fakeStore struct {
	mu       sync.Mutex
	token    string
	hasToken bool
	user     *models.Identity

	getErr   error
	saveErr  error
	clearErr error

	clears int
	saves  int
}

func (f *fakeStore) GetToken(context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.hasToken, f.getErr
}

func (f *fakeStore) GetUser(context.Context) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, nil
}

func (f *fakeStore) Save(_ context.Context, token string, id models.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.token, f.hasToken = token, true
	f.user = &id
	return nil
}

func (f *fakeStore) ClearAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.token, f.hasToken, f.user = "", false, nil
	return nil
}

type fakeNav struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeNav) Navigate(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return nil
}

func (f *fakeNav) visited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

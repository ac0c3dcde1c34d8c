package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/staffkeeper/internal/client/client"
	"github.com/dmitrijs2005/staffkeeper/internal/client/config"
	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/client/store"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeTransport answers calls from handle and records them.
type fakeTransport struct {
	mu     sync.Mutex
	calls  []*client.Call
	closed bool
	handle func(ctx context.Context, call *client.Call) error
}

func (f *fakeTransport) Invoke(ctx context.Context, call *client.Call) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	h := f.handle
	f.mu.Unlock()
	if h == nil {
		return nil
	}
	return h(ctx, call)
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTransport) ops() []client.Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]client.Op, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Op)
	}
	return out
}

func (f *fakeTransport) last(op client.Op) *client.Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Op == op {
			return f.calls[i]
		}
	}
	return nil
}

// respond copies v into the call's response the way a transport decodes it.
func respond(t *testing.T, call *client.Call, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, call.Response))
}

func signToken(t *testing.T, sub string, role models.Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "role": string(role)}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func statusErr(op client.Op, status int, msg string) error {
	return &client.StatusError{Op: op, Status: status, Message: msg}
}

// loginAs makes every login succeed with a token for sub and role.
func loginAs(t *testing.T, sub string, role models.Role) func(context.Context, *client.Call) error {
	tok := signToken(t, sub, role)
	return func(_ context.Context, call *client.Call) error {
		if call.Op == client.OpLogin {
			respond(t, call, models.AuthResponse{Token: tok})
		}
		return nil
	}
}

type testApp struct {
	*App
	transport *fakeTransport
	out       *bytes.Buffer
	dbPath    string
}

// newTestApp assembles an App over a fake transport and a fresh credential
// database. input feeds the prompts.
func newTestApp(t *testing.T, input string, dbPath string) *testApp {
	t.Helper()

	oldTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerm })

	if dbPath == "" {
		dbPath = filepath.Join(t.TempDir(), "creds.db")
	}
	db, err := store.OpenDatabase(context.Background(), dbPath)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	tr := &fakeTransport{}
	out := &bytes.Buffer{}
	a, err := assemble(cfg, tr, db, strings.NewReader(input), out, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &testApp{App: a, transport: tr, out: out, dbPath: dbPath}
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/client/client"
	"github.com/dmitrijs2005/staffkeeper/internal/client/config"
	"github.com/dmitrijs2005/staffkeeper/internal/client/identity"
	"github.com/dmitrijs2005/staffkeeper/internal/client/interceptor"
	"github.com/dmitrijs2005/staffkeeper/internal/client/metrics"
	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/client/notify"
	"github.com/dmitrijs2005/staffkeeper/internal/client/router"
	"github.com/dmitrijs2005/staffkeeper/internal/client/services"
	"github.com/dmitrijs2005/staffkeeper/internal/client/store"
	"github.com/dmitrijs2005/staffkeeper/internal/filex"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	channel   *client.Channel
	auth      *services.AuthService
	employees *services.EmployeeService
	router    *router.Router
	metrics   *metrics.Metrics
	reader    *bufio.Reader
	out       io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the credential store, connects the transport selected by c
// and assembles the session services around it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	path, err := filex.EnsureParentDir(c.StoragePath)
	if err != nil {
		return nil, err
	}

	db, err := store.OpenDatabase(ctx, path)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", path, "error", err)
		return nil, err
	}

	transport, err := newTransport(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a, err := assemble(c, transport, db, os.Stdin, os.Stdout, logger)
	if err != nil {
		_ = transport.Close()
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newTransport(c *config.Config) (client.Transport, error) {
	switch c.Transport {
	case config.TransportGRPC:
		t, err := client.NewGRPCTransport(c.ServerEndpointAddr)
		if err != nil {
			return nil, fmt.Errorf("grpc transport: %w", err)
		}
		return t, nil
	default:
		return client.NewHTTPTransport(c.ServerEndpointAddr, nil), nil
	}
}

// assemble wires the components. The error pipeline and the bearer
// interceptor need the auth service, which itself needs the channel, so
// both resolve it at call time.
func assemble(c *config.Config, transport client.Transport, db *sql.DB, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	strategy, err := identity.ParseStrategy(c.DecoderStrategy)
	if err != nil {
		return nil, err
	}

	credentials := store.NewCredentialStore(db)
	decoder, err := identity.New(strategy, credentials, logger)
	if err != nil {
		return nil, err
	}

	session := services.NewSessionState()
	nav, err := router.New(session, router.Landing, logger, router.DefaultRoutes()...)
	if err != nil {
		return nil, fmt.Errorf("route table: %w", err)
	}

	m := metrics.New()
	sink := notify.NewWriterSink(out)

	var auth *services.AuthService
	pipeline := interceptor.New(
		func(ctx context.Context) error { return auth.Logout(ctx) },
		nav, router.Neutral, sink, m, logger,
	)

	channel := client.NewChannel(transport,
		pipeline.Intercept,
		client.RequestIDInterceptor(),
		client.LoggingInterceptor(logger.With("module", "channel")),
		client.TimeoutInterceptor(c.RequestTimeout),
		client.BearerInterceptor(client.TokenSourceFunc(func() string { return auth.AccessToken() })),
	)

	auth = services.NewAuthService(channel, credentials, decoder, session, logger,
		services.WithNavigator(nav, router.Landing),
		services.WithMetrics(m),
	)

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		channel:   channel,
		auth:      auth,
		employees: services.NewEmployeeService(channel, logger),
		router:    nav,
		metrics:   m,
		reader:    bufio.NewReader(in),
		out:       out,
		mode:      ModeOffline,
	}, nil
}

// start restores the persisted session and opens the matching surface.
func (a *App) start(ctx context.Context) error {
	s := a.auth.Bootstrap(ctx)
	target := router.Landing
	if s.Authenticated() {
		target = router.Home
	}
	return a.router.Navigate(ctx, target)
}

// Run restores the session, starts the background workers and blocks in the
// REPL until the user exits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	if err := a.start(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	if a.config.MetricsAddr != "" {
		srv := &http.Server{Addr: a.config.MetricsAddr, Handler: a.metrics.Handler()}
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.logger.Info(ctx, "metrics listening", "addr", a.config.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error(ctx, "metrics server failed", "error", err)
			}
		}()
		go func() {
			defer wg.Done()
			<-ctx.Done()
			_ = srv.Shutdown(context.WithoutCancel(ctx))
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	fmt.Fprintln(a.out, "StaffKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)

	cancel()
	wg.Wait()
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.channel.Close(); err != nil {
		a.logger.Warn(ctx, "closing transport", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "closing credential store", "error", err)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session().Current().Authenticated()
}

// status is the REPL prompt: session, surface and connectivity.
func (a *App) status() string {
	return fmt.Sprintf("%s %s [%s]", a.auth.Session().Current(), a.router.Current().Path, a.Mode())
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done and records whether it answered.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.channel.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// report prints a failed command. Backend failures of authenticated calls
// have already been announced by the error pipeline and are not repeated.
func (a *App) report(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	var (
		le *services.LoginError
		re *services.RegisterError
		ve *services.ValidationError
	)
	switch {
	case errors.As(err, &le):
		a.println(le.Message)
	case errors.As(err, &re):
		a.println(re.Message)
	case errors.As(err, &ve):
		a.println("Invalid input:", ve.Error())
	default:
		if _, ok := client.AsStatus(err); ok {
			return
		}
		a.println("Error:", err)
	}
}

func formatEmployee(e models.Employee) string {
	return fmt.Sprintf("%6d  %-30s  %s", e.EmployeeID, e.FullName(), e.Email)
}

func formatEmployeeDetails(e models.Employee) string {
	var b strings.Builder
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%-14s %s\n", k+":", v)
		}
	}
	id := func(p *int64) string {
		if p == nil {
			return ""
		}
		return fmt.Sprint(*p)
	}

	row("ID", fmt.Sprint(e.EmployeeID))
	row("Name", e.FullName())
	row("Email", e.Email)
	row("Phone", e.PhoneNumber)
	if e.DateOfBirth != nil {
		row("Born", e.DateOfBirth.String())
	}
	row("Gender", e.Gender)
	row("Hired", e.HireDate.String())
	row("Salary", fmt.Sprintf("%.2f", e.Salary))
	row("Manager", id(e.ManagerID))
	row("Company", id(e.CompanyID))
	row("Project", id(e.ProjectID))
	row("Designation", id(e.DesignationID))
	row("Bank", e.BankName)
	row("Account", e.BankAccountNumber)
	row("IFSC", e.IFSCCode)
	row("PAN", e.PANNumber)
	row("Skills", e.Skills)
	row("Domain", e.Domain)
	row("Status", e.Status)
	row("LinkedIn", e.LinkedinURL)
	row("GitHub", e.GithubURL)
	return strings.TrimRight(b.String(), "\n")
}

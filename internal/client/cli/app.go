package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/client/auth"
	"github.com/dmitrijs2005/fileshare/internal/client/client"
	"github.com/dmitrijs2005/fileshare/internal/client/config"
	"github.com/dmitrijs2005/fileshare/internal/client/events"
	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/repositories/history"
	"github.com/dmitrijs2005/fileshare/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/fileshare/internal/client/services"
	"github.com/dmitrijs2005/fileshare/internal/client/ui"
	"github.com/dmitrijs2005/fileshare/internal/filex"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// metadataLoader settles the identity provider's discovery document.
type metadataLoader interface {
	Load(ctx context.Context) (*auth.Metadata, error)
}

// session is the app-level view of authentication.
type session struct {
	initialized   bool
	authenticated bool
	name          string
}

type App struct {
	auth     auth.Authenticator
	metadata metadataLoader
	logins   *events.Dispatcher[events.LoginSucceeded]
	uploads  services.UploadService
	data     services.DataService
	history  history.Repository
	ui       ui.Renderer
	logger   logging.Logger

	requestTimeout time.Duration

	wireOnce sync.Once

	mu       sync.Mutex
	state    session
	selected *models.LocalFile

	closers []io.Closer
}

// deps lists everything App needs; NewApp builds the real ones.
type deps struct {
	auth           auth.Authenticator
	metadata       metadataLoader
	logins         *events.Dispatcher[events.LoginSucceeded]
	uploads        services.UploadService
	data           services.DataService
	history        history.Repository
	ui             ui.Renderer
	logger         logging.Logger
	requestTimeout time.Duration
}

func newApp(d deps) *App {
	if d.requestTimeout <= 0 {
		d.requestTimeout = 30 * time.Second
	}
	return &App{
		auth:           d.auth,
		metadata:       d.metadata,
		logins:         d.logins,
		uploads:        d.uploads,
		data:           d.data,
		history:        d.history,
		ui:             d.ui,
		logger:         d.logger,
		requestTimeout: d.requestTimeout,
	}
}

// NewApp opens local state and builds the services described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.LogFile != "" {
		if err := filex.EnsureParentDir(c.LogFile); err != nil {
			return nil, err
		}
	}
	logger, logCloser := logging.New(logging.Options{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		Fallback:   os.Stderr,
	})

	if err := filex.EnsureParentDir(c.DBPath); err != nil {
		_ = logCloser.Close()
		return nil, err
	}
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		_ = logCloser.Close()
		return nil, err
	}

	apiHTTP := &http.Client{Timeout: c.RequestTimeout}
	// Uploads are bounded by the caller's context only; large files take
	// longer than any fixed request timeout.
	uploadHTTP := &http.Client{}

	objects, linker, err := newStorage(ctx, c, uploadHTTP)
	if err != nil {
		_ = db.Close()
		_ = logCloser.Close()
		return nil, err
	}

	renderer := ui.NewTerminal(os.Stdout, ui.IsTerminal(os.Stdout))
	logins := events.NewDispatcher[events.LoginSucceeded]()
	loader := auth.NewMetadataLoader(auth.DiscoveryURL(c.Authority), apiHTTP)
	hist := history.NewStore(db, c.HistoryLimit, logger)

	authn := auth.NewOIDC(auth.Config{
		ClientID:        c.ClientID,
		Authority:       c.Authority,
		Scopes:          c.Scopes,
		RedirectPort:    c.RedirectPort,
		ProfileEndpoint: c.ProfileEndpoint,
		SignInTimeout:   c.SignInTimeout,
		HTTPClient:      apiHTTP,
		OnAuthURL: func(u string) {
			renderer.ShowInfo("Opening the browser to sign in. If it does not open, visit:\n  " + u)
		},
	}, localstorage.NewSQLiteRepository(db), loader, logins, logger)

	app := newApp(deps{
		auth:           authn,
		metadata:       loader,
		logins:         logins,
		uploads:        services.NewUploadService(authn, objects, linker, hist, logger),
		data:           services.NewDataService(authn, client.NewHTTPDataClient(c.DataEndpoint, apiHTTP), logger),
		history:        hist,
		ui:             renderer,
		logger:         logger,
		requestTimeout: c.RequestTimeout,
	})
	app.closers = append(app.closers, db, logCloser)
	return app, nil
}

// Run initializes authentication and serves the REPL on stdin until exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to fshare (type 'help' for commands)")
	// Failures are rendered by Initialize; the REPL still runs so the user
	// can read history.
	_ = a.Initialize(ctx)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Close releases the database and the log file.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.authenticated {
		return a.state.name
	}
	return "signed out"
}

func (a *App) isInitialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.initialized
}

func (a *App) isAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.authenticated
}

func (a *App) setAuthenticated(ok bool, name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.authenticated = ok
	a.state.name = name
}

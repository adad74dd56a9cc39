package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/locator/internal/client/api"
	"github.com/dmitrijs2005/locator/internal/client/cache"
	"github.com/dmitrijs2005/locator/internal/client/client"
	"github.com/dmitrijs2005/locator/internal/client/config"
	"github.com/dmitrijs2005/locator/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/locator/internal/client/selection"
	"github.com/dmitrijs2005/locator/internal/client/services"
	"github.com/dmitrijs2005/locator/internal/client/session"
	"github.com/dmitrijs2005/locator/internal/logging"
)

// Mode is the server reachability shown in the prompt.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const onlineCheckInterval = 30 * time.Second

// route names the view the console is showing.
type route string

const (
	routeNone     route = ""
	routeHome     route = "/"
	routeSignIn   route = "/signin"
	routeSignUp   route = "/signup"
	routeLocation route = "/location"
	routeForm     route = "/form"
	routeUsers    route = "/users"
)

// App is the interactive console.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	session        *session.Store
	authService    services.AuthService
	catalogService services.CatalogService
	userService    services.UserService

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	Mode Mode

	route   route
	unmount func()
	stale   atomic.Bool

	stopReset func()
}

// NewApp opens the local database, restores the persisted session and wires
// the remote client and the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sess := session.Load(ctx, metadata.NewSQLiteRepository(db), log)

	transport, err := client.NewHTTPClient(c.APIBaseURL, sess,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	apiClient := api.New(transport, cache.New(cache.WithLogger(log)), log)

	a := newApp(c, log, sess, apiClient, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, sess *session.Store, apiClient *api.Client, r *bufio.Reader, w io.Writer) *App {
	if log == nil {
		log = logging.Nop{}
	}
	return &App{
		config:         c,
		log:            log,
		session:        sess,
		authService:    services.NewAuthService(apiClient, sess, apiClient.Cache()),
		catalogService: services.NewCatalogService(apiClient, selection.NewStore(), c.PageLimit, log),
		userService:    services.NewUserService(apiClient),
		reader:         r,
		out:            w,
		stopReset:      services.ResetOnLogout(sess, apiClient.Cache()),
	}
}

// Run starts the REPL and releases resources when it ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close stops watching queries and closes the local database.
func (a *App) Close() error {
	a.leave()
	if a.stopReset != nil {
		a.stopReset()
		a.stopReset = nil
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) access() services.Access {
	return services.AccessFor(a.session.Snapshot())
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), fmt.Sprintf("switched to %s mode", mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
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

// navigate switches the current view. Leaving the home view stops watching
// its queries.
func (a *App) navigate(r route) {
	if a.route == routeHome && r != routeHome {
		a.leave()
	}
	a.route = r
}

func (a *App) leave() {
	if a.unmount != nil {
		a.unmount()
		a.unmount = nil
	}
	a.stale.Store(false)
}

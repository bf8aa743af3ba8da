package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/catalog"
	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/config"
	"github.com/dmitrijs2005/gophdrive/internal/client/services"
	"github.com/dmitrijs2005/gophdrive/internal/client/shell"
	"github.com/dmitrijs2005/gophdrive/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// maxLocalFile caps a single file picked for upload.
const maxLocalFile = 32 << 20

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	auth    services.AuthService
	files   services.FileService
	billing services.BillingService

	state shell.State

	modeMu sync.RWMutex
	mode   Mode

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	// view-local state
	dashboard []catalog.FileRecord
	search    searchState
	details   detailsState
	progress  *progress
}

type searchState struct {
	all   []catalog.FileRecord
	query catalog.Query
}

type detailsState struct {
	files    []catalog.FileRecord
	selected int
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.SessionDir)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	api, err := client.NewHTTPClient(c.ServerURL, &http.Client{Timeout: c.RequestTimeout})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		log:      logger,
		db:       db,
		auth:     services.NewAuthService(api, db),
		files:    services.NewFileService(api, logger, maxLocalFile),
		billing:  services.NewBillingService(api),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		now:      time.Now,
		progress: &progress{},
	}, nil
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.progress.stop()
	if a.db != nil {
		defer a.db.Close()
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.state.Authenticated
}

func (a *App) view() shell.View {
	return a.state.View
}

func (a *App) dispatch(act shell.Action) {
	a.state = shell.Reduce(a.state, act)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) getStatus() string {
	s := ""
	if a.state.UserID != "" {
		s = a.state.UserID + " "
	}
	if a.state.Authenticated {
		s += a.state.View.String() + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
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

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// Root restores a cached session, starts the connectivity watcher and runs
// the REPL until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to GophDrive (type 'help' for commands)\n")

	a.checkOnline(ctx)
	a.restore(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

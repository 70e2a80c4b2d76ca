package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/usersadmin/internal/client/client"
	"github.com/dmitrijs2005/usersadmin/internal/client/config"
	"github.com/dmitrijs2005/usersadmin/internal/client/controller"
	"github.com/dmitrijs2005/usersadmin/internal/client/journal"
	"github.com/dmitrijs2005/usersadmin/internal/client/table"
	"github.com/dmitrijs2005/usersadmin/internal/filex"
	"github.com/dmitrijs2005/usersadmin/internal/logging"
	"golang.org/x/term"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

type App struct {
	config  *config.Config
	log     logging.Logger
	client  client.Client
	journal *journal.SQLiteRepository
	ctrl    *controller.Controller
	reader  *bufio.Reader
	out     io.Writer
	color   bool

	mu   sync.Mutex
	mode Mode
}

// NewApp wires the console on the process stdin and stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	color := c.Color && term.IsTerminal(int(os.Stdout.Fd()))
	return newApp(ctx, c, log, os.Stdin, os.Stdout, color)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer, color bool) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithToken(c.APIToken),
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log.With("component", "api")),
	)
	if err != nil {
		return nil, err
	}

	a := &App{
		config: c,
		log:    log,
		client: apiClient,
		reader: bufio.NewReader(in),
		out:    out,
		color:  color,
	}

	opts := []controller.Option{
		controller.WithLogger(log),
		controller.WithPageSize(c.PageSize),
	}
	if c.JournalPath != "" {
		if _, err := filex.EnsureParentDir(c.JournalPath); err != nil {
			return nil, fmt.Errorf("journal dir: %w", err)
		}
		jr, err := journal.Open(ctx, c.JournalPath)
		if err != nil {
			log.Error(ctx, "error initializing journal", "path", c.JournalPath, "error", err)
			return nil, err
		}
		a.journal = jr
		opts = append(opts, controller.WithJournal(jr))
	}

	a.ctrl = controller.New(apiClient,
		NewTerminalNotifier(out, color),
		NewTerminalConfirmer(a.reader, out),
		opts...,
	)
	return a, nil
}

// Run loads the first page, starts the reachability watcher and serves the
// REPL until exit, EOF or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn(fmt.Sprintf("Users admin console, API %s (type 'help' for commands)", a.config.APIBaseURL))
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if err := a.ctrl.Load(ctx); err == nil {
		_ = a.List(ctx, nil)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() {
	_ = a.client.Close()
	if a.journal != nil {
		_ = a.journal.Close()
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	prev := a.mode
	a.mode = mode
	a.mu.Unlock()

	if prev == mode {
		return
	}
	if mode == ModeOffline {
		a.log.Warn(ctx, "API unreachable, switched to offline mode")
		return
	}
	a.log.Info(ctx, "switched to online mode")
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode == ModeUnknown {
		return ""
	}
	return "(" + string(a.mode) + ")"
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.client.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the API every interval until ctx is done.
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

func (a *App) presenter() *table.Presenter {
	return a.ctrl.Presenter(
		table.WithLanguage(a.config.Language()),
		table.WithColor(a.color),
	)
}

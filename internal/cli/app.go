// Package cli implements the interactive jobtrack front end: a small REPL
// over the account and job stores.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrijs2005/jobtrack/internal/accounts"
	"github.com/dmitrijs2005/jobtrack/internal/config"
	"github.com/dmitrijs2005/jobtrack/internal/jobs"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
	"github.com/dmitrijs2005/jobtrack/internal/notify"
	"github.com/dmitrijs2005/jobtrack/internal/storage"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	accounts *accounts.Store
	jobs     *jobs.Store
	log      logging.Logger
	reader   *bufio.Reader
	closeFn  func() error
}

// NewApp wires storage, stores and the notifier from config.
//
// When the database cannot be opened the app falls back to an in-memory
// store: the session remains usable, data is lost on exit. Availability
// over durability.
func NewApp(ctx context.Context, cfg *config.Config) *App {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	var kv storage.KeyValue
	closeFn := func() error { return nil }

	sq, err := storage.OpenSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		log.Warn(ctx, "falling back to in-memory storage, data will not survive exit", "error", err)
		kv = storage.NewMemory()
	} else {
		kv = sq
		closeFn = sq.Close
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.NotifyEnabled {
		notifier = notify.NewWeb3Forms(cfg.NotifyEndpoint, cfg.NotifyAccessKey, cfg.NotifyTimeout)
	}

	clock := clockwork.NewRealClock()
	as := accounts.NewStore(ctx, kv, clock, log, notifier)
	js := jobs.NewStore(ctx, kv, as, clock, log)

	return &App{
		config:   cfg,
		accounts: as,
		jobs:     js,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		closeFn:  closeFn,
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.closeFn() }()

	printlnFn("Welcome to jobtrack (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.accounts.Current() != nil
}

func (a *App) status() string {
	if p := a.accounts.Current(); p != nil {
		return p.Email
	}
	return ""
}

package app

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/bingohub/internal/config"
	"github.com/vovakirdan/bingohub/internal/core"
	"github.com/vovakirdan/bingohub/internal/results"
	"github.com/vovakirdan/bingohub/internal/store"
	"github.com/vovakirdan/bingohub/internal/store/sqlite"
	transporthttp "github.com/vovakirdan/bingohub/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	journal         *results.Journal
	store           store.ResultStore
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}

	var sink core.ResultSink
	var lister transporthttp.ResultLister
	if cfg.Results.DBPath != "" {
		st, err := sqlite.New(cfg.Results.DBPath)
		if err != nil {
			return nil, fmt.Errorf("init results store: %w", err)
		}
		logger.Info().Str("db_path", cfg.Results.DBPath).Msg("results journal enabled")

		a.store = st
		a.journal = results.NewJournal(st, cfg.Results.QueueSize, logger)
		sink = a.journal
		lister = a.journal
	}

	a.hub = core.NewHub(core.Options{
		VerifyClaims: cfg.Game.VerifyClaims,
		Catalog:      cfg.Game.Catalog(),
		ReserveTTL:   cfg.Game.ReserveTTL,
		Results:      sink,
		Logger:       logger,
	})
	if cfg.Game.VerifyClaims {
		logger.Info().Msg("win claims are verified against room boards")
	}

	a.server = transporthttp.NewServer(a.hub, lister, cfg, logger)
	return a, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() stdhttp.Handler {
	return a.server.Handler
}

// Run starts the coordinator, the results journal and the HTTP server and
// blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	defer a.cleanup()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.hub.Run(gctx)
		return nil
	})

	if a.journal != nil {
		g.Go(func() error {
			return a.journal.Run(gctx)
		})
	}

	g.Go(func() error {
		a.log.Info().Str("addr", a.server.Addr).Msg("http server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		return a.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// cleanup closes database and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/linkshelf/internal/blob"
	"github.com/MrSnakeDoc/linkshelf/internal/config"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkshelf/internal/httpserver/views"
	"github.com/MrSnakeDoc/linkshelf/internal/linkcheck"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
	"github.com/MrSnakeDoc/linkshelf/internal/scheduler"
	"github.com/MrSnakeDoc/linkshelf/internal/store"
	"github.com/MrSnakeDoc/linkshelf/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	backend  blob.Backend
	store    *store.Store
	snapshot *scheduler.Snapshotter
}

// New opens storage and builds the HTTP server. Storage is opened eagerly so
// a misconfigured backend fails at startup, not on the first request.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	renderer, err := views.New()
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	st := store.New(backend, loggerClient)

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		Store:           st,
		Prober:          linkcheck.NewChecker(cfg.ProbeTimeout),
		Views:           renderer,
		SeedFile:        cfg.SeedFile,
		ProbeBurst:      cfg.ProbeBurst,
		ProbeRefillRate: cfg.ProbeRefillRate,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		backend:  backend,
		store:    st,
		snapshot: scheduler.NewSnapshotter(backend, loggerClient, cfg.SnapshotInterval),
	}, nil
}

// Store is the bookmark store bound to the configured backend.
func (a *App) Store() *store.Store { return a.store }

// Run serves until ctx is canceled or SIGINT/SIGTERM, then shuts down.
func (a *App) Run(parent context.Context) error {
	a.logger.Infof("🚀 Starting linkshelf v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("linkshelf %s (commit=%s, built=%s, go=%s, backend=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion, a.backend.Name())

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.snapshot.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.closeBackend()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.closeBackend()
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeBackend()
	a.logger.Info("✅ linkshelf stopped cleanly")
	return nil
}

func (a *App) closeBackend() {
	a.snapshot.Stop()
	if err := a.backend.Close(); err != nil {
		a.logger.Warnf("failed to close %s storage: %v", a.backend.Name(), err)
		return
	}
	a.logger.Info("✅ storage closed cleanly", logger.String("backend", a.backend.Name()))
}

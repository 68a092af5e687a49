// Package app wires configuration, storage, services and transport into a
// runnable process. The HTTP server and the CLI commands share one App.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/adapter/postgres"
	"github.com/heartmarshall/wordpractice/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordpractice/internal/adapter/remote/jsonapi"
	"github.com/heartmarshall/wordpractice/internal/adapter/remote/supabase"
	"github.com/heartmarshall/wordpractice/internal/adapter/speech"
	"github.com/heartmarshall/wordpractice/internal/adapter/sqlite"
	"github.com/heartmarshall/wordpractice/internal/auth"
	"github.com/heartmarshall/wordpractice/internal/config"
	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/localstore"
	"github.com/heartmarshall/wordpractice/internal/service/catalogue"
	"github.com/heartmarshall/wordpractice/internal/service/practice"
	"github.com/heartmarshall/wordpractice/internal/service/syncer"
	"github.com/heartmarshall/wordpractice/internal/service/wordofday"
	"github.com/heartmarshall/wordpractice/internal/transport/middleware"
	"github.com/heartmarshall/wordpractice/internal/transport/rest"
	"github.com/heartmarshall/wordpractice/internal/wordpool"
	"github.com/heartmarshall/wordpractice/internal/workspace"
)

type localKV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

type remoteStore interface {
	FetchCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error)
	UpsertCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error
}

type definitionLookup interface {
	LookupDefinition(ctx context.Context, word string) (string, error)
}

// App is the wired application.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Practice  *practice.Service
	Catalogue *catalogue.Service
	Sync      *syncer.Service
	WordOfDay *wordofday.Service
	// JWT is nil when authentication is disabled.
	JWT *auth.JWTManager
	// Revisions is set only for the postgres backend.
	Revisions *postgres.CatalogueStore

	kv       localKV
	store    *localstore.Store
	registry *workspace.Registry
	speaker *speech.Speaker
	checks  []rest.HealthCheck
	closers []func()
}

// New builds every component described by cfg. Close releases them.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{Config: cfg, Log: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if err := a.openLocal(ctx); err != nil {
		return nil, err
	}
	a.store = localstore.New(a.kv, logger)
	registry := workspace.NewRegistry(a.store, logger)
	a.registry = registry

	pool, err := wordpool.Load(cfg.Practice.WordPoolPath)
	if err != nil {
		return nil, fmt.Errorf("load word pool: %w", err)
	}

	remote, err := a.openRemote(ctx)
	if err != nil {
		return nil, err
	}

	// dictionary stays a nil interface when lookups are disabled.
	var dictionary definitionLookup
	if cfg.Dictionary.Enabled {
		provider := freedict.NewProvider(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout, cfg.Dictionary.Accent, logger)
		dictionary = provider
		a.speaker = speech.NewSpeaker(provider, logger)
	} else {
		a.speaker = speech.NewSpeaker(nil, logger)
	}

	a.Sync = syncer.NewService(logger, registry, remote, cfg.Remote.Timeout)
	a.Practice = practice.NewService(logger, registry, pool, a.Sync, a.speaker, a.store, practice.Options{
		Seed:         cfg.Practice.Seed,
		SoundDefault: cfg.Practice.SpeakWords,
	})
	a.Catalogue = catalogue.NewService(logger, registry, a.Sync, dictionary)
	a.WordOfDay = wordofday.NewService(logger, pool, a.store, dictionary, cfg.WordOfDay.Location)

	if cfg.Auth.Enabled() {
		a.JWT = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	}

	logger.InfoContext(ctx, "application wired",
		slog.String("local_driver", cfg.Local.Driver),
		slog.String("remote_backend", cfg.Remote.Backend),
		slog.Bool("dictionary", cfg.Dictionary.Enabled),
		slog.Bool("auth", cfg.Auth.Enabled()),
		slog.Int("word_pool", pool.Len()),
	)
	return a, nil
}

func (a *App) openLocal(ctx context.Context) error {
	switch a.Config.Local.Driver {
	case config.LocalMemory:
		a.kv = localstore.NewMemoryKV()
	default:
		kv, err := sqlite.Open(ctx, a.Config.Local.Path)
		if err != nil {
			return fmt.Errorf("open local store: %w", err)
		}
		a.kv = kv
	}
	a.checks = append(a.checks, rest.HealthCheck{Name: "local_store", Ping: a.kv.Ping})
	a.closers = append(a.closers, func() {
		if err := a.kv.Close(); err != nil {
			a.Log.Error("close local store", slog.String("error", err.Error()))
		}
	})
	return nil
}

// openRemote returns nil when no backend is configured.
func (a *App) openRemote(ctx context.Context) (remoteStore, error) {
	cfg := a.Config.Remote
	switch cfg.Backend {
	case config.RemoteREST:
		return jsonapi.NewStore(cfg.REST.BaseURL, cfg.REST.Token, cfg.Timeout, a.Log), nil
	case config.RemoteSupabase:
		return supabase.NewStore(cfg.Supabase.URL, cfg.Supabase.APIKey, cfg.Supabase.Table, cfg.Timeout, a.Log), nil
	case config.RemotePostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, a.Log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Database, a.Log)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		a.checks = append(a.checks, rest.HealthCheck{Name: "remote_database", Ping: pool.Ping, Optional: true})
		a.Revisions = postgres.NewCatalogueStore(pool, postgres.NewTxManager(pool), a.Log)
		return a.Revisions, nil
	default:
		return nil, nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	if a.speaker != nil {
		a.speaker.Wait()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Handler builds the HTTP handler with the full middleware chain.
func (a *App) Handler(limiter *middleware.RateLimiter) http.Handler {
	mux := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(BuildVersion(), a.checks...),
		Practice:  rest.NewPracticeHandler(a.Practice, a.Log),
		Catalogue: rest.NewCatalogueHandler(a.Catalogue, a.Log),
		Sync:      rest.NewSyncHandler(a.Sync, a.Log),
		WordOfDay: rest.NewWordOfDayHandler(a.WordOfDay, a.Log),
		Lookup:    limiter.Limit(a.Config.Server.LookupRateLimit),
	})

	var authn middleware.Middleware
	if a.JWT != nil {
		authn = middleware.Auth(a.JWT, a.Log)
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(a.Log),
		middleware.CORS(a.Config.CORS),
		authn,
		middleware.Logger(a.Log),
	)(mux)
}

// Serve runs the HTTP server and the word-of-the-day rotation until ctx is
// cancelled, then shuts both down.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.Config

	if cfg.WordOfDay.Enabled {
		sched, err := wordofday.NewScheduler(a.WordOfDay, cfg.WordOfDay.At, cfg.WordOfDay.Location, a.Log)
		if err != nil {
			return fmt.Errorf("word of the day scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	if cfg.Practice.IdleTTL > 0 {
		go a.registry.Sweep(ctx, time.Minute, cfg.Practice.IdleTTL)
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      a.Handler(limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.Log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// Run is the server entry point: it loads configuration from configPath (see
// config.Load), wires the application and serves until SIGINT or SIGTERM.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

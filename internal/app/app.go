// Package app wires the question paper bot: configuration, catalog seeding,
// Telegram routes and the background status and keep-alive loops.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/m3rciful/paperbot/core/bootstrap"
	"github.com/m3rciful/paperbot/core/buildinfo"
	"github.com/m3rciful/paperbot/core/logger"
	tg "github.com/m3rciful/paperbot/core/telegram"
	"github.com/m3rciful/paperbot/core/telegram/router"
	"github.com/m3rciful/paperbot/core/telegram/sender"
	"github.com/m3rciful/paperbot/core/telegram/state"
	"github.com/m3rciful/paperbot/internal/bot"
	"github.com/m3rciful/paperbot/internal/catalog"
	"github.com/m3rciful/paperbot/internal/health"
	"github.com/m3rciful/paperbot/internal/i18n"
	"github.com/m3rciful/paperbot/internal/keepalive"
	"github.com/m3rciful/paperbot/internal/metrics"
)

// App owns the shared bot state. Handlers receive it by reference through
// the Navigator.
type App struct {
	cfg *Config

	store    *catalog.Store
	sessions state.Manager
	texts    *i18n.Table
	nav      *bot.Navigator
	handlers *bot.Handlers
	registry *tg.Registry

	promReg *prometheus.Registry
	metrics *metrics.Metrics

	infra *bootstrap.Result

	cancel context.CancelFunc
	group  *errgroup.Group
}

// New builds the application with an empty catalog. Seed fills it.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}

	promReg := prometheus.NewRegistry()
	if err := promReg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("app: register go collector: %w", err)
	}
	if err := promReg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("app: register process collector: %w", err)
	}
	m, err := metrics.New(metrics.DefaultNamespace, promReg)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	texts := i18n.Default()
	sessions := state.NewMemoryManager(i18n.DefaultLanguage)
	if err := metrics.RegisterSessions(metrics.DefaultNamespace, promReg, sessions.Len); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	store := catalog.NewStore()
	n := bot.NewNavigator(bot.Options{
		Catalog:  store,
		Sessions: sessions,
		Texts:    texts,
		BaseURL:  cfg.Papers.BaseURL,
		AdminID:  cfg.Telegram.AdminID,
		Metrics:  m,
	})
	h := bot.NewHandlers(n)
	reg := tg.NewRegistry()
	if err := h.Register(reg); err != nil {
		return nil, fmt.Errorf("app: register handlers: %w", err)
	}

	return &App{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		texts:    texts,
		nav:      n,
		handlers: h,
		registry: reg,
		promReg:  promReg,
		metrics:  m,
	}, nil
}

// Bootstrap initializes logging and the optional database, then seeds the
// catalog.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	res, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
		Seeders:  []bootstrap.Seeder{bootstrap.SeederFunc(a.Seed)},
	})
	if err != nil {
		return nil, err
	}
	a.infra = res
	return a, nil
}

// Catalog exposes the shared catalog store.
func (a *App) Catalog() *catalog.Store { return a.store }

// Seed loads the catalog from the seed file or the built-in entries, then
// appends the papers table when a database is connected.
func (a *App) Seed(ctx context.Context, res *bootstrap.Result) error {
	source := "builtin"
	entries := catalog.DefaultEntries()
	if path := a.cfg.Papers.SeedFile; path != "" {
		loaded, err := catalog.LoadYAMLFile(path)
		if err != nil {
			return fmt.Errorf("app: seed: %w", err)
		}
		source, entries = "file", loaded
	}
	a.store.PutAll(entries)
	logger.Catalog.Info("catalog seeded",
		slog.String("event", "catalog.seed"),
		slog.String("source", source),
		slog.Int("entries", len(entries)),
	)

	if res != nil && res.DB != nil {
		rows, err := catalog.LoadPostgres(ctx, res.DB)
		if err != nil {
			return fmt.Errorf("app: seed: %w", err)
		}
		a.store.PutAll(rows)
		logger.Catalog.Info("catalog seeded",
			slog.String("event", "catalog.seed"),
			slog.String("source", "postgres"),
			slog.Int("entries", len(rows)),
		)
	}

	a.metrics.SetCatalogSize(a.store.Len())
	return nil
}

// TelegramRunOptions assembles routes, middlewares and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := &a.cfg.Config
	router.SetObserver(a.metrics)

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID:       core.Telegram.AdminID,
		OnAdminReject: a.handlers.RejectAdmin,
	})
	routes = append(routes, router.UpdateRoutes(a.registry, a.sessions, bot.CallbackKey, a.handlers)...)

	dispatch := sender.Options{
		Workers:    core.Sender.Workers,
		QueueSize:  core.Sender.QueueSize,
		MaxRetries: core.Sender.MaxRetries,
		OnResult:   a.metrics.ObserveSend,
	}

	return tg.RunOptions{
		Config:            core,
		Registry:          a.registry,
		DispatcherOptions: dispatch,
		Middlewares:       tg.DefaultMiddlewares(core, a.handlers.RateLimited),
		Routes:            routes,
		OnStart:           a.start,
		OnStop:            a.stop,
	}, nil
}

// StatusHandler serves /, /health and /metrics.
func (a *App) StatusHandler() http.Handler {
	return health.Routes(
		health.NewHandler(buildinfo.BotName),
		promhttp.HandlerFor(a.promReg, promhttp.HandlerOpts{Registry: a.promReg}),
	)
}

func (a *App) start(ctx context.Context, _ tg.Runtime) error {
	bg, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(bg)

	healthAddr := "disabled"
	if !a.cfg.Health.Disabled {
		ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", a.cfg.Health.Listen)
		if err != nil {
			cancel()
			return fmt.Errorf("app: health listen %s: %w", a.cfg.Health.Listen, err)
		}
		healthAddr = ln.Addr().String()
		srv := health.NewServer(a.cfg.Health.Listen, a.StatusHandler())
		g.Go(func() error { return srv.Serve(gctx, ln) })
	}

	pinger := keepalive.FromConfig(a.cfg.KeepAlive, a.metrics)
	keepAliveTarget := "disabled"
	if pinger != nil {
		keepAliveTarget = pinger.Target()
		g.Go(func() error { return pinger.Run(gctx) })
	}

	a.cancel, a.group = cancel, g

	logger.L.With("component", "app").Info("question paper bot started",
		slog.String("event", "app.banner"),
		slog.Int64("admin_id", a.cfg.Telegram.AdminID),
		slog.String("base_url", a.cfg.Papers.BaseURL),
		slog.String("health_listen", healthAddr),
		slog.String("keepalive_target", keepAliveTarget),
		slog.Int("catalog_entries", a.store.Len()),
		slog.Bool("database", a.infra != nil && a.infra.DB != nil),
	)
	return nil
}

func (a *App) stop(_ context.Context, _ tg.Runtime) error {
	var errs []error
	if a.cancel != nil {
		a.cancel()
		if err := a.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			errs = append(errs, fmt.Errorf("app: background: %w", err))
		}
	}
	router.SetObserver(nil)
	if err := a.infra.Close(); err != nil {
		errs = append(errs, fmt.Errorf("app: close database: %w", err))
	}
	return errors.Join(errs...)
}

package cmd

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreconfig "github.com/m3rciful/paperbot/core/config"
	"github.com/m3rciful/paperbot/core/logger"
	coretelegram "github.com/m3rciful/paperbot/core/telegram"
)

// ConfigCarrier is an application config that embeds the core config.
type ConfigCarrier interface {
	CoreConfig() *coreconfig.Config
}

// TelegramApp is what Bootstrap hands back to be run.
type TelegramApp interface {
	TelegramRunOptions() (coretelegram.RunOptions, error)
}

const (
	// DefaultConfigEnvVar names the variable holding the config path.
	DefaultConfigEnvVar = "CONFIG_PATH"
	// DefaultConfigPath is used when the variable is unset.
	DefaultConfigPath = "config.yaml"
)

// Options describe one bot binary. C is the application's config type.
type Options[C ConfigCarrier] struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig func(path string) (C, error)
	// Bootstrap receives a context cancelled on SIGINT or SIGTERM.
	Bootstrap func(ctx context.Context, cfg C) (TelegramApp, error)

	ShutdownLogger func() error
	RunTelegram    func(ctx context.Context, opts coretelegram.RunOptions) error
}

// Run loads the config, bootstraps the app and serves updates until a signal
// arrives. The logger is flushed on every return path.
func Run[C ConfigCarrier](opts Options[C]) error {
	if opts.LoadConfig == nil || opts.Bootstrap == nil {
		return fmt.Errorf("cmd: LoadConfig and Bootstrap are required")
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return run(ctx, opts)
}

func run[C ConfigCarrier](ctx context.Context, opts Options[C]) (err error) {
	shutdown := opts.ShutdownLogger
	if shutdown == nil {
		shutdown = logger.Shutdown
	}
	defer func() {
		if serr := shutdown(); serr != nil {
			slog.Error("logger shutdown failed", slog.String("err", serr.Error()))
		}
	}()

	path := cmp.Or(
		os.Getenv(cmp.Or(opts.ConfigEnvVar, DefaultConfigEnvVar)),
		opts.DefaultConfigPath,
		DefaultConfigPath,
	)
	slog.Info("loading config", slog.String("path", path))
	cfg, err := opts.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}
	if cfg.CoreConfig() == nil {
		return fmt.Errorf("cmd: loaded config is missing core configuration")
	}

	startedAt := time.Now()
	app, err := opts.Bootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}
	runOpts, err := app.TelegramRunOptions()
	if err != nil {
		return fmt.Errorf("cmd: telegram options build failed: %w", err)
	}
	announce(&runOpts, startedAt)

	serve := opts.RunTelegram
	if serve == nil {
		serve = coretelegram.RunTelegram
	}
	return serve(ctx, runOpts)
}

// announce wraps the lifecycle hooks with the app.ready and app.shutdown lines.
func announce(opts *coretelegram.RunOptions, startedAt time.Time) {
	start, stop := opts.OnStart, opts.OnStop
	opts.OnStart = func(ctx context.Context, rt coretelegram.Runtime) error {
		if start != nil {
			if err := start(ctx, rt); err != nil {
				return err
			}
		}
		logger.Info(ctx, logger.L, "app.ready", slog.Duration("startup", time.Since(startedAt)))
		return nil
	}
	opts.OnStop = func(ctx context.Context, rt coretelegram.Runtime) error {
		logger.Info(ctx, logger.L, "app.shutdown")
		if stop != nil {
			return stop(ctx, rt)
		}
		return nil
	}
}

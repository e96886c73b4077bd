// Package cli wires configuration, logging, stores and the simulator for the pdaboat
// commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/internal/config"
	"github.com/aretw0/pdaboat/internal/logging"
	"github.com/aretw0/pdaboat/pkg/adapters/file"
	"github.com/aretw0/pdaboat/pkg/adapters/memory"
	"github.com/aretw0/pdaboat/pkg/adapters/redis"
	"github.com/aretw0/pdaboat/pkg/domain"
	"github.com/aretw0/pdaboat/pkg/playback"
	"github.com/aretw0/pdaboat/pkg/ports"
	"github.com/aretw0/pdaboat/pkg/templates"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	Debug      bool
	LogFile    string
}

// App holds the process-wide dependencies built from configuration.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *templates.Registry
	Policy   playback.QuizPolicy
	closers  []io.Closer
}

// Setup loads configuration and builds the logger, template registry and quiz policy.
// Flags override configuration: --debug forces debug level, --log-file replaces log.file.
func Setup(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	logger, closer, err := logging.Open(level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		closers: []io.Closer{closer},
	}

	app.Registry, err = templates.Default(templates.WithDefault(cfg.DefaultTemplate))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("default_template: %w", err)
	}

	app.Policy, err = playback.NewExprPolicy(cfg.QuizPolicy)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("quiz_policy: %w", err)
	}

	logger.Debug("configuration loaded",
		"config", opts.ConfigPath,
		"default_template", cfg.DefaultTemplate,
		"store", cfg.Store.Backend,
	)
	return app, nil
}

// Close releases the log file and any opened store.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Mode returns the configured default mode.
func (a *App) Mode() domain.Mode {
	mode, _ := domain.ParseMode(a.Config.Mode)
	return mode
}

// NewSimulator builds a simulator over the configured registry. Extra hooks are merged
// with the debug hooks.
func (a *App) NewSimulator(hooks ...domain.LifecycleHooks) *pdaboat.Simulator {
	merged := createDebugHooks(a.Logger)
	for _, h := range hooks {
		merged = merged.Merge(h)
	}
	return pdaboat.New(
		pdaboat.WithRegistry(a.Registry),
		pdaboat.WithLogger(a.Logger),
		pdaboat.WithLifecycleHooks(merged),
	)
}

// OpenStore creates the configured session store. The locker is only set for redis, where
// several processes may share sessions.
func (a *App) OpenStore(ctx context.Context) (ports.SessionStore, ports.DistributedLocker, error) {
	sc := a.Config.Store
	switch sc.Backend {
	case config.BackendFile:
		return file.New(sc.Path), nil, nil
	case config.BackendRedis:
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB,
			redis.WithPrefix(sc.Redis.Prefix),
			redis.WithTTL(sc.Redis.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", sc.Redis.Addr, err)
		}
		a.closers = append(a.closers, store)
		return store, redis.NewLocker(store.Client(), store.Prefix()), nil
	}
	return memory.NewStore(), nil, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step", "template", e.TemplateID, "step", e.Step.Index, "total", e.Total,
				"operation", e.Step.Operation, "state", e.Step.State)
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			logger.Debug("Verdict", "template", e.TemplateID, "verdict", e.Verdict, "steps", e.Steps, "failure", e.Failure)
		},
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

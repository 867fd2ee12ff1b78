package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/km-arc/go-validation/framework/config"
	"github.com/km-arc/go-validation/framework/container"
	"github.com/km-arc/go-validation/framework/metrics"
	"github.com/km-arc/go-validation/framework/providers"
	"github.com/km-arc/go-validation/framework/routing"
	"github.com/km-arc/go-validation/framework/ruleset"
	"github.com/km-arc/go-validation/framework/validation"
)

// Version is reported by the CLI and the startup log.
const Version = "0.1.0"

const shutdownTimeout = 10 * time.Second

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly,
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	boot sync.Once
}

// New loads configuration from envFiles and registers the framework
// providers. Invalid configuration is reported here rather than on first use.
func New(envFiles ...string) (*Application, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig is New with an already loaded Config.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	if err := providers.CheckConfig(cfg); err != nil {
		return nil, fmt.Errorf("app: invalid configuration: %w", err)
	}

	c := container.New()
	registry := container.NewProviderRegistry(c)
	app := &Application{
		Container: c,
		Providers: registry,
	}

	// Register framework core providers (same order as Laravel)
	registry.Register(&providers.ConfigServiceProvider{Config: cfg})
	registry.Register(&providers.LoggingServiceProvider{})
	registry.Register(&providers.ValidationServiceProvider{})
	registry.Register(&providers.RuleSetServiceProvider{})
	registry.Register(&providers.MetricsServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers and mounts the routes, once.
func (a *Application) Boot() {
	a.boot.Do(func() {
		a.Providers.Boot()
		a.mountRoutes()
	})
}

// ── Accessors ─────────────────────────────────────────────────────────────────

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, providers.Config)
}

// Logger resolves the application *slog.Logger.
func (a *Application) Logger() *slog.Logger {
	return container.Resolve[*slog.Logger](a.Container, providers.Log)
}

// Registry resolves the shared rule registry.
func (a *Application) Registry() *validation.Registry {
	return container.Resolve[*validation.Registry](a.Container, providers.Registry)
}

// Events resolves the validation event dispatcher.
func (a *Application) Events() *validation.Dispatcher {
	return container.Resolve[*validation.Dispatcher](a.Container, providers.Events)
}

// Validator resolves the shared *validation.Validator.
func (a *Application) Validator() *validation.Validator {
	return container.Resolve[*validation.Validator](a.Container, providers.Validator)
}

// RuleSets resolves the rule-set store.
func (a *Application) RuleSets() *ruleset.Store {
	return container.Resolve[*ruleset.Store](a.Container, providers.RuleSets)
}

// Metrics resolves the Prometheus collector, registering it on first use.
func (a *Application) Metrics() *metrics.Collector {
	return container.Resolve[*metrics.Collector](a.Container, providers.Metrics)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, providers.Router)
}

// Handler boots the application (if needed) and returns its HTTP handler.
func (a *Application) Handler() http.Handler {
	a.Boot()
	return a.Router()
}

// ── Serve ─────────────────────────────────────────────────────────────────────

// Run boots the application, watches the rule-set directory when
// VALIDATION_WATCH is set and serves HTTP until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	handler := a.Handler()
	cfg := a.Config()
	log := a.Logger()

	if cfg.Validation.Watch {
		go func() {
			if err := a.RuleSets().Watch(ctx); err != nil {
				log.Error("watch rule sets", slog.Any("error", err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			slog.String("addr", srv.Addr),
			slog.String("version", a.Version()),
			slog.String("env", a.Environment()),
			slog.Bool("debug", a.IsDebug()),
			slog.Any("rulesets", a.RuleSets().Names()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsProduction() bool  { return a.Config().IsProduction() }

// IsDebug reports APP_DEBUG, which production ignores. Server errors carry
// their cause only in debug.
func (a *Application) IsDebug() bool { return a.Config().App.Debug && !a.IsProduction() }

func (a *Application) Version() string { return Version }

package providers

import (
	"fmt"
	"log/slog"

	"github.com/km-arc/go-validation/framework/config"
	"github.com/km-arc/go-validation/framework/container"
	"github.com/km-arc/go-validation/framework/logging"
	"github.com/km-arc/go-validation/framework/metrics"
	"github.com/km-arc/go-validation/framework/routing"
	"github.com/km-arc/go-validation/framework/ruleset"
	"github.com/km-arc/go-validation/framework/validation"
)

// Bound abstracts.
const (
	Config    = "config"
	Log       = "log"
	Registry  = "validation.registry"
	Events    = "validation.events"
	Validator = "validator"
	RuleSets  = "rulesets"
	Metrics   = "metrics"
	Router    = "router"
)

// CheckConfig reports settings the providers below cannot build from. Call it
// before registering them: their factories panic on the same input.
func CheckConfig(cfg *config.Config) error {
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch logging.Format(cfg.Log.Format) {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("logging: unknown format %q", cfg.Log.Format)
	}
	if _, err := validation.NewStrategy(cfg.Validation.Strategy, nil); err != nil {
		return err
	}
	if _, err := validation.ParseUnknownRulePolicy(cfg.Validation.UnknownRules); err != nil {
		return err
	}
	return nil
}

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration as "config".
// A nil Config is loaded from EnvFiles on first use.
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		app.Instance(Config, p.Config)
	} else {
		envFiles := p.EnvFiles
		app.Singleton(Config, func(c *container.Container) any {
			return config.MustLoad(envFiles...)
		})
	}
	app.Alias(Config, "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger as "log".
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	app.Singleton(Log, func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, Config)
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			panic(err)
		}
		return logging.New(
			logging.WithLevel(level),
			logging.WithFormat(logging.Format(cfg.Log.Format)),
			logging.WithAttr(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env)),
		)
	})
}

// ── ValidationServiceProvider ─────────────────────────────────────────────────

// ValidationServiceProvider binds the rule registry, the event dispatcher and
// a Validator configured from VALIDATION_*.
//
// Bound abstracts:
//   - "validation.registry" → *validation.Registry (built-in rules)
//   - "validation.events"   → *validation.Dispatcher
//   - "validator"           → *validation.Validator
//
// Laravel equivalent:
//
//	// Illuminate\Validation\ValidationServiceProvider
//	$app->singleton('validator', fn($app) => new Factory($app['translator'], $app));
type ValidationServiceProvider struct {
	container.BaseProvider
}

func (p *ValidationServiceProvider) Register(app *container.Container) {
	app.Singleton(Registry, func(c *container.Container) any {
		return validation.DefaultRegistry()
	})
	app.Singleton(Events, func(c *container.Container) any {
		return validation.NewDispatcher()
	})
	app.Singleton(Validator, func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, Config)
		registry := container.Resolve[*validation.Registry](c, Registry)

		strategy, err := NewStrategy(c, cfg.Validation.Strategy)
		if err != nil {
			panic(err)
		}
		return validation.New(registry,
			validation.WithStrategy(strategy),
			validation.WithEvents(container.Resolve[*validation.Dispatcher](c, Events)),
		)
	})
}

// Boot logs validation outcomes.
func (p *ValidationServiceProvider) Boot(app *container.Container) {
	logging.Subscribe(
		container.Resolve[*validation.Dispatcher](app, Events),
		container.Resolve[*slog.Logger](app, Log),
	)
}

// NewStrategy builds the named strategy over the bound registry, with the
// configured unknown-rule policy and logger.
func NewStrategy(app *container.Container, name string) (validation.Strategy, error) {
	cfg := container.Resolve[*config.Config](app, Config)
	policy, err := validation.ParseUnknownRulePolicy(cfg.Validation.UnknownRules)
	if err != nil {
		return nil, err
	}
	return validation.NewStrategy(name,
		container.Resolve[*validation.Registry](app, Registry),
		validation.WithUnknownRulePolicy(policy),
		validation.WithLogger(container.Resolve[*slog.Logger](app, Log)),
	)
}

// ── RuleSetServiceProvider ────────────────────────────────────────────────────

// RuleSetServiceProvider binds the rule-set store of VALIDATION_RULESET_DIR
// as "rulesets" and loads it on boot.
type RuleSetServiceProvider struct {
	container.BaseProvider
}

func (p *RuleSetServiceProvider) Register(app *container.Container) {
	app.Singleton(RuleSets, func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, Config)
		return ruleset.NewStore(cfg.Validation.RuleSetDir,
			ruleset.WithRegistry(container.Resolve[*validation.Registry](c, Registry)),
			ruleset.WithLogger(container.Resolve[*slog.Logger](c, Log)),
		)
	})
}

// Boot loads the rule sets. A broken directory is logged, not fatal: the
// server still answers ad hoc validation requests.
func (p *RuleSetServiceProvider) Boot(app *container.Container) {
	store := container.Resolve[*ruleset.Store](app, RuleSets)
	if err := store.Load(); err != nil {
		container.Resolve[*slog.Logger](app, Log).Error("load rule sets",
			slog.String("dir", store.Dir()), slog.Any("error", err))
	}
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds the Prometheus collector as "metrics". It is
// deferred: nothing is registered until the collector is first resolved.
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) {
	app.Singleton(Metrics, func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, Config)
		return metrics.NewCollector(cfg.Metrics.Namespace, nil)
	})
}

// Boot subscribes the collector to validation events.
func (p *MetricsServiceProvider) Boot(app *container.Container) {
	container.Resolve[*metrics.Collector](app, Metrics).
		Subscribe(container.Resolve[*validation.Dispatcher](app, Events))
}

func (p *MetricsServiceProvider) Provides() []string { return []string{Metrics} }
func (p *MetricsServiceProvider) IsDeferred() bool   { return true }

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton(Router, func(c *container.Container) any {
		return routing.New(routing.WithLogger(container.Resolve[*slog.Logger](c, Log)))
	})
}

package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into Config.
var ErrParsingConfig = errors.New("config: failed to parse environment")

// Config is the central typed configuration struct.
type Config struct {
	App        AppConfig
	Validation ValidationConfig
	Log        LogConfig
	Metrics    MetricsConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"GoValidation"`
	Env   string `env:"APP_ENV" envDefault:"local"` // local | production | testing
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
	Port  string `env:"APP_PORT" envDefault:"8000"`
}

type ValidationConfig struct {
	Strategy     string `env:"VALIDATION_STRATEGY" envDefault:"stop_on_first_error"` // stop_on_first_error | validate_all
	UnknownRules string `env:"VALIDATION_UNKNOWN_RULES" envDefault:"fail"`           // fail | skip
	RuleSetDir   string `env:"VALIDATION_RULESET_DIR" envDefault:"rulesets"`
	Watch        bool   `env:"VALIDATION_WATCH" envDefault:"false"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`  // debug | info | warn | error
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text | json
}

type MetricsConfig struct {
	Enabled   bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"validation"`
	Path      string `env:"METRICS_PATH" envDefault:"/metrics"`
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load for main packages; it panics on error.
func MustLoad(envFiles ...string) *Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return b
}

// Package app provides the application context and dependency management
// for the llmproviders CLI. It centralizes configuration, the provider
// registry and the lazily built provider instances.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/internal/cmd/output"
	"github.com/agentstation/llmproviders/internal/config"
	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/providers"
	"github.com/agentstation/llmproviders/pkg/providers/ollama"
)

// defaultProviderID names the instance used when no providers file exists.
const defaultProviderID = "ollama"

// App represents the llmproviders application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config   *Config
	logger   *zerolog.Logger
	getenv   func(string) string
	registry *providers.Registry

	// Provider instances (lazy-initialized)
	mu        sync.RWMutex
	instances []providers.Provider
	built     bool
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		getenv:  config.GetString,
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.registry == nil {
		app.registry = providers.NewRegistry()
		if err := ollama.Register(app.registry); err != nil {
			return nil, errors.WrapResource("register", "provider type", "ollama", err)
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the output format, detected from the terminal when
// none was configured.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// Registry returns the provider type registry.
func (a *App) Registry() *providers.Registry {
	return a.registry
}

// Providers returns the configured provider instances, building them on
// first use. Without a providers file a single local Ollama instance is
// configured from the environment.
func (a *App) Providers() ([]providers.Provider, error) {
	a.mu.RLock()
	if a.built {
		instances := a.instances
		a.mu.RUnlock()
		return instances, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.built {
		return a.instances, nil
	}

	entries, err := a.providerEntries()
	if err != nil {
		return nil, err
	}
	instances, _, err := config.Build(a.registry, entries, a.getenv)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("file", a.config.ProvidersFile).
		Int("count", len(instances)).
		Msg("Built providers")

	a.instances = instances
	a.built = true
	return instances, nil
}

// Provider returns the configured instance with the given id.
func (a *App) Provider(id string) (providers.Provider, error) {
	instances, err := a.Providers()
	if err != nil {
		return nil, err
	}
	for _, p := range instances {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("provider", id)
}

// Shutdown performs graceful shutdown of the application. Providers hold
// no background work, so this only flushes a final log line.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

func (a *App) providerEntries() ([]config.ProviderEntry, error) {
	path := a.config.ProvidersFile
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) && !a.config.ProvidersFileSet {
		a.logger.Debug().Str("file", path).Msg("No providers file, using local Ollama defaults")
		return []config.ProviderEntry{{ID: defaultProviderID, Type: defaultProviderID}}, nil
	}
	return config.LoadProviders(path)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRegistry sets the provider type registry.
func WithRegistry(r *providers.Registry) Option {
	return func(a *App) error {
		a.registry = r
		return nil
	}
}

// WithGetenv replaces the environment lookup used for provider defaults.
func WithGetenv(getenv func(string) string) Option {
	return func(a *App) error {
		a.getenv = getenv
		return nil
	}
}

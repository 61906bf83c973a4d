// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/llmproviders/pkg/providers"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/llmproviders/app implements it; tests use Mock.
type Interface interface {
	// Registry returns the provider type registry.
	Registry() *providers.Registry

	// Providers returns the provider instances declared in the providers
	// file, in file order. They are built once and shared.
	Providers() ([]providers.Provider, error)

	// Provider returns the configured instance with the given id.
	Provider(id string) (providers.Provider, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

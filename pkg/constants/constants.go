// Package constants provides shared constants used throughout the codebase.
// This includes timeouts, endpoints, file permissions, and environment
// variable names that should be consistent across the application.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to provider APIs.
	// Zero means no client-side timeout; the request is bounded by its context.
	DefaultHTTPTimeout time.Duration = 0

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout bounds graceful shutdown after a failed command.
	ShutdownTimeout = 5 * time.Second

	// ServerDrainTimeout bounds connection draining when the API server stops.
	ServerDrainTimeout = 30 * time.Second
)

// Ollama endpoints
const (
	// OllamaLocalBaseURL is the default address of a self-hosted Ollama server.
	OllamaLocalBaseURL = "http://localhost:11434"

	// OllamaDockerBaseURL is the address of the host's Ollama server as seen
	// from inside a container.
	OllamaDockerBaseURL = "http://host.docker.internal:11434"

	// OllamaCloudBaseURL is the Ollama Cloud API root.
	OllamaCloudBaseURL = "https://ollama.com"

	// OllamaTagsPath lists the models available on an Ollama server.
	OllamaTagsPath = "/api/tags"

	// OpenAICompatPath is where Ollama serves its OpenAI-compatible API.
	OpenAICompatPath = "/v1"
)

// Environment variable names
const (
	// EnvOllamaBaseURL seeds the Ollama base URL.
	EnvOllamaBaseURL = "OLLAMA_BASE_URL"

	// EnvOllamaAPIKey seeds the Ollama Cloud API key.
	EnvOllamaAPIKey = "OLLAMA_API_KEY"

	// EnvDocker is set when running inside the project's container image.
	EnvDocker = "DOCKER"

	// EnvProvidersFile points at the providers YAML file.
	EnvProvidersFile = "PROVIDERS_FILE"

	// EnvHTTPHost overrides the API server bind address.
	EnvHTTPHost = "HTTP_HOST"

	// EnvHTTPPort overrides the API server port.
	EnvHTTPPort = "HTTP_PORT"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Defaults for the CLI
const (
	// DefaultProvidersFile is looked up in the working directory when no
	// providers file is configured.
	DefaultProvidersFile = "providers.yaml"

	// ConfigFileName is the config file name searched in $HOME and the
	// working directory.
	ConfigFileName = ".llmproviders"
)

package server

import "time"

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	// PathPrefix is prepended to every API route except /health.
	PathPrefix string

	CORSEnabled bool
	CORSOrigins []string

	// RequestTimeout bounds upstream calls made while serving a request,
	// such as fetching a provider catalog. Zero disables the bound.
	RequestTimeout time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		CORSOrigins:    []string{},
		RequestTimeout: 30 * time.Second,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
	}
}

// Package serve provides the HTTP API server command.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/internal/cmd/emoji"
	"github.com/agentstation/llmproviders/internal/server"
	"github.com/agentstation/llmproviders/pkg/constants"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Serve provider types, providers and models over HTTP",
		Long: `Serve starts a read-only JSON API over the configured providers.

Endpoints (under --prefix, default /api/v1):
  GET /health
  GET /types
  GET /types/{type}/fields
  GET /providers
  GET /providers/{id}
  GET /providers/{id}/models[?kind=chat|embedding]

HTTP_HOST and HTTP_PORT override --host and --port.`,
		Example: `  llmproviders serve
  llmproviders serve --port 3000 --cors
  llmproviders serve --cors-origins https://app.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, os.Getenv)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), server.New(app, cfg), app.Logger())
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")
	cmd.Flags().Duration("request-timeout", defaults.RequestTimeout, "Timeout for upstream provider calls (0 to disable)")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// parseConfig reads flags into a server configuration, then applies the
// HTTP_HOST and HTTP_PORT overrides.
func parseConfig(cmd *cobra.Command, getenv func(string) string) (server.Config, error) {
	cfg := server.Config{
		Host:           mustGet(cmd.Flags().GetString("host")),
		Port:           mustGet(cmd.Flags().GetInt("port")),
		PathPrefix:     mustGet(cmd.Flags().GetString("prefix")),
		CORSEnabled:    mustGet(cmd.Flags().GetBool("cors")),
		CORSOrigins:    mustGet(cmd.Flags().GetStringSlice("cors-origins")),
		RequestTimeout: mustGet(cmd.Flags().GetDuration("request-timeout")),
		ReadTimeout:    mustGet(cmd.Flags().GetDuration("read-timeout")),
		WriteTimeout:   mustGet(cmd.Flags().GetDuration("write-timeout")),
		IdleTimeout:    mustGet(cmd.Flags().GetDuration("idle-timeout")),
	}

	if host := getenv(constants.EnvHTTPHost); host != "" {
		cfg.Host = host
	}
	if port := getenv(constants.EnvHTTPPort); port != "" {
		p, err := parsePort(port)
		if err != nil {
			return cfg, err
		}
		cfg.Port = p
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("port out of range: %d", cfg.Port)
	}
	return cfg, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", s)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// run serves until ctx is cancelled, then drains connections.
func run(ctx context.Context, out io.Writer, srv *server.Server, logger *zerolog.Logger) error {
	httpServer := srv.HTTPServer()

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", httpServer.Addr, err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()
	fmt.Fprintf(out, "%s API server listening on %s\n", emoji.Listening, ln.Addr())

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutdown signal received")
	fmt.Fprintf(out, "%s Shutting down API server...\n", emoji.Stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerDrainTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Dur("uptime", time.Since(srv.StartTime())).Msg("Server stopped gracefully")
	fmt.Fprintf(out, "%s API server stopped\n", emoji.Success)
	return nil
}

// mustGet unwraps a flag lookup. Flags are registered in NewCommand, so a
// lookup error is a programming error.
func mustGet[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("programming error: %v", err))
	}
	return v
}

package serve

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/internal/server"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseConfig_Defaults(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := parseConfig(cmd, env(nil))
	require.NoError(t, err)
	assert.Equal(t, server.DefaultConfig(), cfg)
}

func TestParseConfig_FlagsAndEnv(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags([]string{
		"--port", "3000",
		"--cors-origins", "https://a.example,https://b.example",
		"--request-timeout", "5s",
		"--prefix", "/v2",
	}))

	cfg, err := parseConfig(cmd, env(map[string]string{"HTTP_HOST": "0.0.0.0"}))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "/v2", cfg.PathPrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)

	cfg, err = parseConfig(cmd, env(map[string]string{"HTTP_PORT": "4000"}))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
}

func TestParseConfig_InvalidPort(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	require.NoError(t, cmd.ParseFlags(nil))

	_, err := parseConfig(cmd, env(map[string]string{"HTTP_PORT": "abc"}))
	assert.ErrorContains(t, err, "invalid port number")

	_, err = parseConfig(cmd, env(map[string]string{"HTTP_PORT": "70000"}))
	assert.ErrorContains(t, err, "port out of range")
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	srv := server.New(&appcontext.Mock{}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	logger := zerolog.Nop()
	require.NoError(t, run(ctx, &out, srv, &logger))
	assert.Contains(t, out.String(), "API server listening on 127.0.0.1:")
	assert.Contains(t, out.String(), "API server stopped")
}

func TestRun_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := server.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	srv := server.New(&appcontext.Mock{}, cfg)

	var out bytes.Buffer
	logger := zerolog.Nop()
	err = run(context.Background(), &out, srv, &logger)
	assert.ErrorContains(t, err, "listen on 127.0.0.1:"+strconv.Itoa(cfg.Port))
}

package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/llmproviders/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")

	assert.Contains(t, buf.String(), "info message")
	assert.Contains(t, buf.String(), "warning message")
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithProvider(ctx, "ollama-local")
	ctx = logging.WithModel(ctx, "llama3")
	ctx = logging.WithOperation(ctx, "load_chat_model")

	logging.FromContext(ctx).Info().Msg("test message")

	tl.AssertContains(t, `"provider_id":"ollama-local"`)
	tl.AssertContains(t, `"model":"llama3"`)
	tl.AssertContains(t, `"operation":"load_chat_model"`)
	tl.AssertContains(t, "test message")
	assert.Equal(t, 1, tl.Count())
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.Ctx(logging.WithLogger(context.Background(), nil)))
}

func TestNewLoggerFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, output string)
	}{
		{
			name:   "debug level",
			config: &logging.Config{Level: "debug", Format: "json", Output: "discard"},
			check: func(t *testing.T, output string) {
				assert.Contains(t, output, `"level":"debug"`)
			},
		},
		{
			name:   "error level only",
			config: &logging.Config{Level: "error", Format: "json", Output: "discard"},
			check: func(t *testing.T, output string) {
				assert.NotContains(t, output, `"level":"info"`)
				assert.Contains(t, output, `"level":"error"`)
			},
		},
		{
			name: "default fields",
			config: &logging.Config{
				Level:  "info",
				Format: "json",
				Output: "discard",
				Fields: map[string]string{"service": "llmproviders"},
			},
			check: func(t *testing.T, output string) {
				assert.Contains(t, output, `"service":"llmproviders"`)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			old := zerolog.GlobalLevel()
			t.Cleanup(func() { zerolog.SetGlobalLevel(old) })

			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tc.config).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			tc.check(t, buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), "level %q", in)
	}
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Error().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	assert.Equal(t, 2, tl.Count())
	assert.True(t, strings.HasPrefix(tl.Lines()[0], "{"))
}

func TestTestLoggerEntries(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Debug().
		Str("provider_id", "home").
		Str("url", "http://gpu-box:11434/api/tags").
		Int("count", 3).
		Msg("Fetched Ollama catalog")
	tl.Logger.Warn().Str("provider_id", "home").Msg("Ollama server unreachable")

	entries := tl.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "debug", entries[0].Level())
	assert.Equal(t, "3", entries[0].String("count"))
	assert.Empty(t, entries[0].String("missing"))

	e := tl.AssertProviderEntry(t, zerolog.DebugLevel, "Fetched Ollama catalog", "home", "http://gpu-box:11434/api/tags")
	assert.Equal(t, "Fetched Ollama catalog", e.Message())

	_, ok := tl.Find("never logged")
	assert.False(t, ok)
}

// recordingTB records failures instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper()               {}
func (r *recordingTB) Errorf(string, ...any) { r.failed = true }

func TestTestLoggerAssertEntryFailures(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Logger.Info().Str("provider_id", "home").Msg("loaded")

	wrongLevel := &recordingTB{TB: t}
	tl.AssertEntry(wrongLevel, zerolog.WarnLevel, "loaded", nil)
	assert.True(t, wrongLevel.failed)

	missingField := &recordingTB{TB: t}
	tl.AssertEntry(missingField, zerolog.InfoLevel, "loaded", map[string]string{"url": "x"})
	assert.True(t, missingField.failed)

	wrongValue := &recordingTB{TB: t}
	tl.AssertEntry(wrongValue, zerolog.InfoLevel, "loaded", map[string]string{"provider_id": "cloud"})
	assert.True(t, wrongValue.failed)

	ok := &recordingTB{TB: t}
	tl.AssertEntry(ok, zerolog.InfoLevel, "loaded", map[string]string{"provider_id": "home"})
	assert.False(t, ok.failed)
}

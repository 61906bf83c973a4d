package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// Entry is one decoded JSON log line.
type Entry map[string]any

// Level returns the entry's level field.
func (e Entry) Level() string {
	s, _ := e[zerolog.LevelFieldName].(string)
	return s
}

// Message returns the entry's message field.
func (e Entry) Message() string {
	s, _ := e[zerolog.MessageFieldName].(string)
	return s
}

// String returns the value of field key formatted with fmt.Sprint, or ""
// when the field is absent.
func (e Entry) String(key string) string {
	v, ok := e[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// TestLogger captures JSON log output at every level so tests can assert on
// individual entries and their fields.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger creates a capturing logger. The global level is raised to
// trace for the duration of the test.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	buf := &bytes.Buffer{}
	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, Buffer: buf}
}

// Output returns the raw captured output.
func (tl *TestLogger) Output() string {
	return tl.Buffer.String()
}

// Lines returns the captured output split into lines.
func (tl *TestLogger) Lines() []string {
	output := strings.TrimSpace(tl.Output())
	if output == "" {
		return []string{}
	}
	return strings.Split(output, "\n")
}

// Count returns the number of log entries.
func (tl *TestLogger) Count() int {
	return len(tl.Lines())
}

// Entries decodes every captured line. Lines that are not JSON are skipped.
func (tl *TestLogger) Entries() []Entry {
	lines := tl.Lines()
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Find returns the first entry with the given message.
func (tl *TestLogger) Find(msg string) (Entry, bool) {
	for _, e := range tl.Entries() {
		if e.Message() == msg {
			return e, true
		}
	}
	return nil, false
}

// AssertContains fails the test when the raw output lacks substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.Output(), substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, tl.Output())
	}
}

// AssertNotContains fails the test when the raw output contains substr.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if strings.Contains(tl.Output(), substr) {
		t.Errorf("log output should not contain %q\noutput:\n%s", substr, tl.Output())
	}
}

// AssertEntry fails the test unless an entry with msg was logged at level
// and carries every field in fields. Field values compare by fmt.Sprint.
func (tl *TestLogger) AssertEntry(t testing.TB, level zerolog.Level, msg string, fields map[string]string) Entry {
	t.Helper()
	e, ok := tl.Find(msg)
	if !ok {
		t.Errorf("no log entry with message %q\noutput:\n%s", msg, tl.Output())
		return nil
	}
	if e.Level() != level.String() {
		t.Errorf("entry %q logged at %s, want %s", msg, e.Level(), level)
	}
	for key, want := range fields {
		if _, present := e[key]; !present {
			t.Errorf("entry %q has no field %s", msg, key)
			continue
		}
		if got := e.String(key); got != want {
			t.Errorf("entry %q field %s = %q, want %q", msg, key, got, want)
		}
	}
	return e
}

// AssertProviderEntry checks an entry logged by a provider adapter for the
// provider_id and url fields every catalog request carries.
func (tl *TestLogger) AssertProviderEntry(t testing.TB, level zerolog.Level, msg, providerID, url string) Entry {
	t.Helper()
	return tl.AssertEntry(t, level, msg, map[string]string{
		"provider_id": providerID,
		"url":         url,
	})
}

// NewNopLogger creates a logger that discards all output.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

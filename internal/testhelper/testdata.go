// Package testhelper provides fixtures and fake servers for provider tests.
package testhelper

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/llmproviders/pkg/constants"
)

// UpdateTestdata rewrites golden files instead of comparing against them.
var UpdateTestdata = flag.Bool("update", false, "update testdata files")

// LoadTestdata reads a file from the calling package's testdata directory.
func LoadTestdata(t *testing.T, filename string) []byte {
	t.Helper()

	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", path, err)
	}
	return data
}

// CompareJSONWithTestdata marshals actual and compares it with a golden
// file, rewriting the file when -update is set.
func CompareJSONWithTestdata(t *testing.T, filename string, actual any) {
	t.Helper()

	data, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal actual data for comparison: %v", err)
	}
	data = append(data, '\n')

	if *UpdateTestdata {
		saveTestdata(t, filename, data)
		return
	}

	if expected := LoadTestdata(t, filename); string(data) != string(expected) {
		t.Errorf("JSON data does not match testdata file %s\nActual:\n%s\nExpected:\n%s",
			filename, data, expected)
	}
}

func saveTestdata(t *testing.T, filename string, data []byte) {
	t.Helper()

	if err := os.MkdirAll("testdata", constants.DirPermissions); err != nil {
		t.Fatalf("Failed to create testdata directory: %v", err)
	}
	path := filepath.Join("testdata", filename)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		t.Fatalf("Failed to save testdata file %s: %v", path, err)
	}
	t.Logf("Updated testdata file: %s", path)
}

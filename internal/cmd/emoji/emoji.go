// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status lines printed by long-running commands.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Stop marks a shutdown in progress.
	Stop = "■"

	// Listening marks a server accepting connections.
	Listening = "●"
)

package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "llmproviders"}
	root.AddCommand(NewCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"completion"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, shell)
			require.NoError(t, err)
			assert.Contains(t, out, "llmproviders")
		})
	}
}

func TestCompletion_InvalidShell(t *testing.T) {
	_, err := execute(t, "tcsh")
	assert.Error(t, err)

	_, err = execute(t)
	assert.Error(t, err)
}

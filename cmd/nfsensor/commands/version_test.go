package commands

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersionInfo(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})
	SetVersionInfo(v, c, d)
}

func TestVersion(t *testing.T) {
	cmd := Version()

	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("short"))
}

func TestVersion_Output(t *testing.T) {
	withVersionInfo(t, "1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer
	cmd := Version()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "nfsensor 1.2.3 (commit abc123, built 2026-01-01)")
	assert.Contains(t, out.String(), "prism api: v3")
	assert.Contains(t, out.String(), runtime.Version())
}

func TestVersion_Short(t *testing.T) {
	withVersionInfo(t, "1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer
	cmd := Version()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "1.2.3\n", out.String())
}

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "nfsensor", cmd.Use)
	assert.Equal(t, "Prepare Nutanix AHV for a network traffic sensor", cmd.Short)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	expectedSubcommands := []string{
		"provider",
		"sensor",
		"network",
		"version",
		"completion",
	}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range expectedSubcommands {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
	assert.Len(t, cmd.Commands(), len(expectedSubcommands))
}

func TestRoot_PersistentFlags(t *testing.T) {
	cmd := Root()

	for _, name := range []string{"config", "log-format", "report-file", "metrics-file", "yes", "test"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "Expected persistent flag --%s", name)
	}

	logFormat := cmd.PersistentFlags().Lookup("log-format")
	assert.Equal(t, "text", logFormat.DefValue)
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)
}

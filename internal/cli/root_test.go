package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "btrade", cmd.Use)
	assert.Contains(t, cmd.Long, "offline")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"push", "pull", "order", "checkin", "status"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "btrade.yaml", configFlag.DefValue)
}

func TestPushCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	pushCmd, _, err := cmd.Find([]string{"push"})
	require.NoError(t, err)

	concurrentFlag := pushCmd.Flags().Lookup("concurrent")
	require.NotNil(t, concurrentFlag)
	assert.Equal(t, "false", concurrentFlag.DefValue)
}

func TestCheckInCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	checkInCmd, _, err := cmd.Find([]string{"checkin"})
	require.NoError(t, err)

	for _, name := range []string{"customer", "lat", "lon", "accuracy"} {
		require.NotNil(t, checkInCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestOrderSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	importCmd, _, err := cmd.Find([]string{"order", "import"})
	require.NoError(t, err)
	assert.Equal(t, "import", importCmd.Name())

	listCmd, _, err := cmd.Find([]string{"order", "list"})
	require.NoError(t, err)
	require.NotNil(t, listCmd.Flags().Lookup("draft"))
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"status", "--format", "xml"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInvalidPushTargetRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"push", "invoices"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

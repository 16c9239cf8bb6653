package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sileo/pkg/domain"
)

func flagsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(flagsCmd(t))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPosition, cfg.Position)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_LogLevelOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sileo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("position: top-left\nlog_level: error\n"), 0o644))

	cfg, err := loadConfig(flagsCmd(t, "--config", path, "--log-level", "debug"))
	require.NoError(t, err)
	assert.Equal(t, domain.TopLeft, cfg.Position)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestRootRejectsUnknownLogLevel(t *testing.T) {
	err := rootCmd.PersistentPreRunE(flagsCmd(t, "--log-level", "loud"), nil)
	assert.Error(t, err)
}

package main

import (
	"github.com/aretw0/sileo/internal/config"
	"github.com/aretw0/sileo/internal/logging"
	"github.com/spf13/cobra"
)

// loadConfig reads the --config file, or the defaults when none is set, then
// applies the --log-level override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if name, _ := cmd.Flags().GetString("log-level"); name != "" {
		level, err := logging.ParseLevel(name)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

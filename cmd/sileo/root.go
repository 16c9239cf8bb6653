package main

import (
	"fmt"
	"os"

	"github.com/aretw0/sileo/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sileo",
	Short: "Sileo is a toast notification engine",
	Long: `Sileo shows, animates and dismisses toast notifications.
This CLI checks notifier configuration and replays toast scenarios on the terminal.`,
	// A bad --log-level fails before any command touches the terminal.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("log-level")
		_, err := logging.ParseLevel(name)
		return err
	},
	SilenceUsage: true,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	addGlobalFlags(rootCmd)
}

// addGlobalFlags declares the flags every subcommand inherits.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "Notifier configuration file (YAML or JSON)")
	cmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
}
